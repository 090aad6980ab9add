package session

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const recordKey ctxKey = "session_record"

var tracer = otel.Tracer("github.com/ckd-predict/portal-service/session")

// MetricsRecorder interface for recording auth metrics
type MetricsRecorder interface {
	RecordAuthFailure(ctx context.Context, reason string)
}

// Middleware resolves a bearer session token into the stored record and
// injects it into the request context. A missing or invalid token is
// not fatal here: screens that merely read the session on mount must
// see the logged-out state, never an error. Gate protected routes with
// RequireSession.
func Middleware(issuer *Issuer, store Store) func(http.Handler) http.Handler {
	return MiddlewareWithMetrics(issuer, store, nil)
}

// MiddlewareWithMetrics resolves the session with metrics recording
func MiddlewareWithMetrics(issuer *Issuer, store Store, metrics MetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx, span := tracer.Start(ctx, "session.Middleware",
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			authz := r.Header.Get("Authorization")
			if authz == "" {
				span.SetAttributes(attribute.Bool("session.present", false))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				span.SetStatus(codes.Error, "invalid authorization header")
				span.SetAttributes(attribute.String("error.type", "invalid_header_format"))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, "invalid_header_format")
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sid, err := issuer.Verify(parts[1])
			if err != nil {
				log.Printf("[ERROR] Session token validation failed: %v", err)
				span.SetStatus(codes.Error, "token validation failed")
				span.SetAttributes(attribute.String("error.type", "invalid_token"))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, "invalid_token")
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			rec, err := store.Get(ctx, sid)
			if err == ErrNotFound {
				// Token outlived its record (logout, expiry, purge).
				span.SetAttributes(attribute.Bool("session.present", false))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, "session_not_found")
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			if err != nil {
				log.Printf("[ERROR] Failed to load session %s: %v", sid, err)
				span.SetStatus(codes.Error, "session lookup failed")
				http.Error(w, "failed to load session", http.StatusInternalServerError)
				return
			}

			span.SetAttributes(
				attribute.Bool("session.present", true),
				attribute.String("user.email", rec.Profile.Email),
			)
			span.SetStatus(codes.Ok, "session resolved")

			ctx = context.WithValue(ctx, recordKey, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no resolved session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext extracts the session record from context.
func FromContext(ctx context.Context) (*Record, bool) {
	rec, ok := ctx.Value(recordKey).(*Record)
	return rec, ok
}

// ContextWithRecord injects a session record; used by tests.
func ContextWithRecord(ctx context.Context, rec *Record) context.Context {
	return context.WithValue(ctx, recordKey, rec)
}
