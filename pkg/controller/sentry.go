package controller

import (
	"fmt"
	"net/http"
	"smartsite/pkg/logger"
	"strings"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// WithSentry returns a middleware that gives every request its own sentry hub,
// wraps it in a transaction and turns panics into reported 500 responses.
// Without an initialized sentry client the hub drops everything.
func WithSentry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("request", map[string]any{
				"method":  r.Method,
				"url":     r.URL.String(),
				"headers": safeHeaders(r.Header),
			})
			scope.SetTag("http.method", r.Method)
			if id := RequestID(r.Context()); id != "" {
				scope.SetTag("request_id", id)
			}
		})
		ctx := sentry.SetHubOnContext(r.Context(), hub)

		transaction := sentry.StartTransaction(ctx,
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			sentry.ContinueFromRequest(r),
		)
		rec := newStatusRecorder(w)
		defer func() {
			if err := recover(); err != nil {
				hub.RecoverWithContext(ctx, err)
				logger.Error(ctx, "panic while handling request", zap.Any("panic", err), zap.Stack("stack"))
				if !rec.wroteHeader {
					rec.Header().Set("Content-Type", "application/json")
					rec.WriteHeader(http.StatusInternalServerError)
					_, _ = rec.Write([]byte(`{"code":"INTERNAL","message":"internal error","errors":[]}`))
				}
			}
			transaction.Status = sentry.HTTPtoSpanStatus(rec.status)
			transaction.Finish()
		}()

		next.ServeHTTP(rec, r.WithContext(transaction.Context()))
	})
}

// safeHeaders returns a copy of h with credentials masked.
func safeHeaders(h http.Header) map[string]string {
	safe := make(map[string]string, len(h))
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			safe[k] = "[FILTERED]"

			continue
		}
		safe[k] = strings.Join(v, ", ")
	}

	return safe
}
