// Package httptransport assembles the HTTP surface: middleware chain, module
// handlers, and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approvalhandler "grantflow/internal/approval/handler"
	checklisthandler "grantflow/internal/checklist/handler"
	remarkhandler "grantflow/internal/remark/handler"
	"grantflow/pkg/platform/httputil"
	"grantflow/pkg/platform/middleware/auth"
	"grantflow/pkg/platform/middleware/device"
	"grantflow/pkg/platform/middleware/metadata"
	"grantflow/pkg/platform/middleware/requestid"
	"grantflow/pkg/platform/middleware/requesttime"
)

// HealthCheck reports readiness of one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Approval  *approvalhandler.Handler
	Checklist *checklisthandler.Handler
	Remark    *remarkhandler.Handler
	Validator auth.TokenValidator
	Logger    *slog.Logger
	Health    []HealthCheck
}

// NewRouter wires the middleware chain and all module endpoints. Everything
// under the API group requires a bearer token; health and metrics stay open.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(device.Middleware)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(deps.Validator, deps.Logger))
		deps.Approval.Register(r)
		deps.Checklist.Register(r)
		deps.Remark.Register(r)
	})

	r.Get("/healthz", healthHandler(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		report := make(map[string]string, len(checks)+1)
		for _, check := range checks {
			if err := check.Check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				report[check.Name] = err.Error()
				continue
			}
			report[check.Name] = "ok"
		}
		if status == http.StatusOK {
			report["status"] = "ok"
		} else {
			report["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, report)
	}
}
