// Package httputil centralizes JSON encoding and error mapping for HTTP
// handlers so transport concerns stay out of the services.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "grantflow/pkg/domain-errors"
)

// Validatable requests normalize and validate themselves after decoding.
type Validatable interface {
	Validate() error
}

// errorBody is the wire shape for all error responses.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures are abandoned;
// the status line has already been written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded domain error to an HTTP response. Internal errors
// omit the description so infrastructure details never reach clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.HTTPStatus(code)

	body := errorBody{Error: string(code)}
	if status != http.StatusInternalServerError {
		body.ErrorDescription = dErrors.MessageOf(err)
	}
	WriteJSON(w, status, body)
}

// DecodeAndPrepare decodes the request body into T, runs its validation, and
// writes the error response itself on failure. Returns ok=false when the
// handler should stop.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "request body decode failed",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		var coded *dErrors.Error
		if !errors.As(err, &coded) {
			err = dErrors.New(dErrors.CodeValidation, err.Error())
		}
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
