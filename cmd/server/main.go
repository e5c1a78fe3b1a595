package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"grantflow/internal/approval"
	approvalhandler "grantflow/internal/approval/handler"
	approvalmetrics "grantflow/internal/approval/metrics"
	"grantflow/internal/checklist"
	checklisthandler "grantflow/internal/checklist/handler"
	checklistmetrics "grantflow/internal/checklist/metrics"
	"grantflow/internal/identity"
	"grantflow/internal/notify"
	"grantflow/internal/platform/config"
	"grantflow/internal/platform/httpserver"
	"grantflow/internal/platform/logger"
	"grantflow/internal/platform/redis"
	"grantflow/internal/remark"
	remarkhandler "grantflow/internal/remark/handler"
	httptransport "grantflow/internal/transport/http"
	id "grantflow/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var health []httptransport.HealthCheck

	var (
		projectStore   approval.ProjectStore
		checklistStore checklist.Store
		remarkStore    remark.Store
		identityStore  identity.Store
	)

	switch {
	case cfg.DatabaseURL != "":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		projectStore = approval.NewPostgresProjectStore(db)
		checklistStore = checklist.NewPostgres(db)
		remarkStore = remark.NewPostgres(db)
		identityStore = identity.NewPostgres(db)
		health = append(health, httptransport.HealthCheck{Name: "postgres", Check: db.PingContext})
		log.Info("using postgres stores")

	case cfg.Redis.URL != "":
		client, err := redis.New(cfg.Redis)
		if err != nil {
			log.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		projectStore = approval.NewRedisProjectStore(client.Client)
		checklistStore = checklist.NewInMemoryStore()
		remarkStore = remark.NewInMemoryStore()
		identityStore = identity.NewInMemoryStore()
		health = append(health, httptransport.HealthCheck{Name: "redis", Check: client.Health})
		log.Info("using redis project store with in-memory side stores")

	default:
		projectStore = approval.NewInMemoryProjectStore()
		checklistStore = checklist.NewInMemoryStore()
		remarkStore = remark.NewInMemoryStore()
		identityStore = identity.NewInMemoryStore()
		log.Warn("no DATABASE_URL or REDIS_URL set, state will not survive restarts")
	}

	var sink notify.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := notify.NewKafkaSink(context.Background(), cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("publishing lifecycle events to kafka", "topic", cfg.Kafka.Topic)
	} else {
		sink = notify.NewInMemorySink()
	}
	publisher := notify.NewPublisher(sink, log)
	defer publisher.Close()

	var defaultAssignee id.UserID
	if cfg.DefaultAssignee != "" {
		parsed, err := id.ParseUserID(cfg.DefaultAssignee)
		if err != nil {
			log.Error("invalid GRANTFLOW_DEFAULT_ASSIGNEE", "error", err)
			os.Exit(1)
		}
		defaultAssignee = parsed
	}

	var identitySvc interface {
		RoleOf(ctx context.Context, userID id.UserID) (id.RoleSet, error)
		Exists(ctx context.Context, userID id.UserID) (bool, error)
	}
	if cfg.StatelessIdentity {
		identitySvc = identity.TokenIdentity{}
		log.Info("serving actor roles from token claims")
	} else {
		identitySvc = identity.NewService(identityStore)
	}
	jwtSvc := identity.NewJWTService(cfg.JWTSigningKey, "grantflow")
	remarkSvc := remark.NewService(remarkStore)
	checklistSvc := checklist.NewService(checklist.Config{
		Store:           checklistStore,
		Identity:        identitySvc,
		Ledger:          remarkSvc,
		Stages:          projectStore,
		Policy:          checklist.NewLinkPolicy(cfg.LinkDomains),
		DefaultAssignee: defaultAssignee,
		Logger:          log,
		Metrics:         checklistmetrics.New(),
	})
	approvalSvc := approval.NewService(approval.Config{
		Projects:  projectStore,
		Identity:  identitySvc,
		Checklist: checklistSvc,
		Ledger:    remarkSvc,
		Events:    publisher,
		Logger:    log,
		Metrics:   approvalmetrics.New(),
	})

	router := httptransport.NewRouter(httptransport.Deps{
		Approval:  approvalhandler.New(approvalSvc, log),
		Checklist: checklisthandler.New(checklistSvc, log),
		Remark:    remarkhandler.New(remarkSvc, log),
		Validator: jwtSvc,
		Logger:    log,
		Health:    health,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting grantflow", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
