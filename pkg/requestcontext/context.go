// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, and tests
// inject them without running the HTTP stack.
package requestcontext

import (
	"context"
	"time"

	id "grantflow/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	actorIDKey     struct{}
	actorRolesKey  struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	deviceLabelKey struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyActorID     = actorIDKey{}
	ContextKeyActorRoles  = actorRolesKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyDeviceLabel = deviceLabelKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// ActorID retrieves the authenticated actor from the context.
// Returns the zero value (nil UUID) if not set.
func ActorID(ctx context.Context) id.UserID {
	if actorID, ok := ctx.Value(ContextKeyActorID).(id.UserID); ok {
		return actorID
	}
	return id.UserID{}
}

// WithActorID injects an actor id into the context.
func WithActorID(ctx context.Context, actorID id.UserID) context.Context {
	return context.WithValue(ctx, ContextKeyActorID, actorID)
}

// ActorRoles retrieves the authenticated actor's token-borne roles.
// Returns nil if the auth layer did not attach any.
func ActorRoles(ctx context.Context) id.RoleSet {
	if roles, ok := ctx.Value(ContextKeyActorRoles).(id.RoleSet); ok {
		return roles
	}
	return nil
}

// WithActorRoles injects the actor's roles into the context.
func WithActorRoles(ctx context.Context, roles id.RoleSet) context.Context {
	return context.WithValue(ctx, ContextKeyActorRoles, roles)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	return ctx
}

// DeviceLabel retrieves the coarse device description parsed from the
// User-Agent (for the lifecycle audit trail).
func DeviceLabel(ctx context.Context) string {
	if label, ok := ctx.Value(ContextKeyDeviceLabel).(string); ok {
		return label
	}
	return ""
}

// WithDeviceLabel injects a device label into a context.
func WithDeviceLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, ContextKeyDeviceLabel, label)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins a specific time into a context so a whole unit of work sees
// one consistent clock reading.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
