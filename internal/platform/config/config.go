package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// LinkDomains is the allow-list of document-hosting hosts accepted for
	// checklist evidence links.
	LinkDomains []string

	// DefaultAssignee receives checklist-denial remarks when no slot has a
	// contributor yet. Empty means denial requires a contributor.
	DefaultAssignee string

	JWTSigningKey string

	// StatelessIdentity serves actor roles from the verified token claims
	// instead of the role store. Intended for deployments without a user
	// mirror; assignee existence checks degrade to id well-formedness.
	StatelessIdentity bool
}

// RedisConfig holds connection settings for the optional Redis project store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the lifecycle-event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// defaultLinkDomains mirrors the hosts the compliance office already accepts
// for evidence documents.
var defaultLinkDomains = []string{
	"drive.google.com",
	"docs.google.com",
	"www.dropbox.com",
	"onedrive.live.com",
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("GRANTFLOW_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	domains := defaultLinkDomains
	if raw := os.Getenv("GRANTFLOW_LINK_DOMAINS"); raw != "" {
		domains = splitAndTrim(raw)
	}

	topic := os.Getenv("GRANTFLOW_EVENTS_TOPIC")
	if topic == "" {
		topic = "grantflow.lifecycle"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:   topic,
		},
		LinkDomains:       domains,
		DefaultAssignee:   os.Getenv("GRANTFLOW_DEFAULT_ASSIGNEE"),
		JWTSigningKey:     jwtSigningKey,
		StatelessIdentity: os.Getenv("GRANTFLOW_STATELESS_IDENTITY") == "true",
	}
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
