package controller_test

import (
	"net/http"
	"net/http/httptest"
	"smartsite/pkg/controller"
	"smartsite/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		remote string
		want   string
	}{
		{name: "x-forwarded-for", header: "X-Forwarded-For", value: "1.2.3.4, 5.6.7.8", want: "1.2.3.4"},
		{name: "x-real-ip", header: "X-Real-IP", value: "9.8.7.6", want: "9.8.7.6"},
		{name: "remote addr", remote: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "invalid remote addr", remote: "not-an-addr", want: "not-an-addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Request-Id", controller.RequestID(r.Context()))
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(controller.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get("X-Echo-Request-Id"))
	require.Equal(t, "abc-123", rec.Header().Get(controller.RequestIDHeader))

	// without the header an ID is generated
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, req)
	require.NotEmpty(t, rec.Header().Get("X-Echo-Request-Id"))
	require.Equal(t, rec.Header().Get("X-Echo-Request-Id"), rec.Header().Get(controller.RequestIDHeader))
}

func TestWithLogger_AccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.WriteHeader(http.StatusOK) // ignored by net/http; the first status wins
	})

	req := httptest.NewRequest(http.MethodPost, "/api/lead", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), zap.New(core)))
	req.Header.Set(controller.RequestIDHeader, "rid-1")
	controller.WithLogger(next).ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("Access log").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.EqualValues(t, http.StatusUnprocessableEntity, fields["status_code"])
	require.Equal(t, http.MethodPost, fields["method"])
	require.Equal(t, "rid-1", fields[string(controller.RequestIDKey)])
}
