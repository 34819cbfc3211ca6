package controller_test

import (
	"net/http"
	"net/http/httptest"
	"smartsite/pkg/controller"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPprofMux(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(controller.PprofPath, controller.PprofMux())

	tests := []struct {
		path string
	}{
		{path: "/debug/pprof/"},
		{path: "/debug/pprof/cmdline"},
		{path: "/debug/pprof/goroutine?debug=1"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotEmpty(t, rec.Header().Get("Content-Type"))
		})
	}
}
