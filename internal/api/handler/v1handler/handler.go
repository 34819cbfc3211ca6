// Package v1handler implements the HTTP routes of the public API.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"smartsite/internal/diagnostic"
	"smartsite/internal/leads"
	"smartsite/pkg/logger"
	"smartsite/pkg/schema"
	"smartsite/pkg/serrors"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const (
	// DefaultMaxBodyBytes caps request bodies when Options leave it unset.
	DefaultMaxBodyBytes = 1 << 20
	// maxErrorMessageLength caps persistence error messages returned to clients.
	maxErrorMessageLength = 200
)

// Reporter describes backend reachability for the diagnostic route.
type Reporter interface {
	Report(ctx context.Context) diagnostic.Report
}

type Deps struct {
	Leads    leads.Service
	Reporter Reporter
}

type Options struct {
	// MaxBodyBytes caps request bodies; larger bodies get 413.
	MaxBodyBytes int64
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	if deps.Reporter == nil {
		deps.Reporter = diagnostic.New(nil, diagnostic.Options{})
	}
	if options.MaxBodyBytes <= 0 {
		options.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, options: options}
}

// Register adds the API routes to mux.
func (h Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /api/hello", h.Hello)
	mux.HandleFunc("GET /test", h.Test)
	mux.HandleFunc("POST /api/calculate", h.Calculate)
	mux.HandleFunc("POST /api/lead", h.CreateLead)
	mux.HandleFunc("POST /api/demo", h.CreateDemo)
}

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Errors  []schema.Violation `json:"errors"`
}

type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:        "resource not found",
	serrors.ErrUnauthorized:    "unauthorized",
	serrors.ErrForbidden:       "forbidden",
	serrors.ErrBadRequest:      "bad request",
	serrors.ErrConflict:        "conflict",
	serrors.ErrTimeout:         "request timed out",
	serrors.ErrUnavailable:     "service unavailable",
	serrors.ErrRateLimited:     "too many requests",
	serrors.ErrValidation:      "validation failed",
	serrors.ErrPersistence:     "could not store record",
	serrors.ErrNotConfigured:   "not configured",
	serrors.ErrPayloadTooLarge: "request body too large",
}

var statusCodes = map[serrors.Kind]int{ //nolint: gochecknoglobals
	serrors.ErrNotFound:        http.StatusNotFound,
	serrors.ErrUnauthorized:    http.StatusUnauthorized,
	serrors.ErrForbidden:       http.StatusForbidden,
	serrors.ErrBadRequest:      http.StatusBadRequest,
	serrors.ErrConflict:        http.StatusConflict,
	serrors.ErrTimeout:         http.StatusGatewayTimeout,
	serrors.ErrUnavailable:     http.StatusServiceUnavailable,
	serrors.ErrRateLimited:     http.StatusTooManyRequests,
	serrors.ErrValidation:      http.StatusUnprocessableEntity,
	serrors.ErrPersistence:     http.StatusInternalServerError,
	serrors.ErrNotConfigured:   http.StatusServiceUnavailable,
	serrors.ErrPayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// NewError maps err to a status code and client-facing body. Internal errors
// never expose their message. Server errors are logged and reported to the
// request's sentry hub.
func (h Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)
	status, ok := statusCodes[kind]
	if !ok {
		kind = serrors.ErrInternal
		status = http.StatusInternalServerError
	}

	res := &ErrorResponse{
		StatusCode: status,
		Response: ErrorBody{
			Code:    kind.Error(),
			Message: "internal error",
			Errors:  []schema.Violation{},
		},
	}
	if msg, ok := defaultMessages[kind]; ok {
		res.Response.Message = msg
	}

	var se *serrors.Error
	if kind != serrors.ErrInternal && errors.As(err, &se) && se.Message() != "" {
		res.Response.Message = se.Message()
	}

	switch kind {
	case serrors.ErrValidation:
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			res.Response.Errors = ve.Violations
		}
	case serrors.ErrPersistence:
		res.Response.Message = serrors.Sanitize(err.Error(), maxErrorMessageLength)
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.String("code", res.Response.Code), zap.Error(err))
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(err)
		}
	}

	return res
}

func (h Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

// readBody reads the request body up to the configured limit.
func (h Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, serrors.Wrap(serrors.ErrPayloadTooLarge, err,
				"request body exceeds %d bytes", mbe.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	return body, nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(fmt.Sprintf(`{"code":%q,"message":"internal error","errors":[]}`, serrors.ErrInternal.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Debug(ctx, "could not write response", zap.Error(err))
	}
}
