package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bahjat/seo-insight-tool/internal/model"
	"github.com/Bahjat/seo-insight-tool/internal/platform/errs"
	"github.com/Bahjat/seo-insight-tool/internal/platform/middleware"
)

const defaultAnalyzeTimeout = 30 * time.Second

var errURLRequired = &errs.AppError{Kind: errs.InvalidInput, Message: "URL is required"}

// Transport handles HTTP requests for page analysis.
type Transport struct {
	service *Service
	logger  *slog.Logger
	timeout time.Duration
}

// NewTransport creates an HTTP transport backed by the given service. Each
// analysis is bounded by timeout; zero means 30s.
func NewTransport(service *Service, logger *slog.Logger, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = defaultAnalyzeTimeout
	}
	return &Transport{service: service, logger: logger, timeout: timeout}
}

// RegisterRoutes attaches the transport's handlers to the given mux. The
// analyze middlewares wrap POST /analyze only, first listed outermost.
func (t *Transport) RegisterRoutes(mux *http.ServeMux, analyze ...func(http.Handler) http.Handler) {
	mux.Handle("POST /analyze", middleware.Chain(http.HandlerFunc(t.handleAnalyze), analyze...))
	mux.HandleFunc("GET /healthz", t.handleHealth)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

// validate only rejects an empty url. Blank input is left to NormalizeURL,
// which answers "Invalid URL".
func (r analyzeRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	return nil
}

func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.reject(w, r, decodeError(err))
		return
	}

	if err := req.validate(); err != nil {
		t.reject(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), t.timeout)
	defer cancel()

	report, err := t.service.Analyze(ctx, req.URL)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, report)
}

// reject answers a request refused before analysis started.
func (t *Transport) reject(w http.ResponseWriter, r *http.Request, err error) {
	t.service.Reject(r.Context(), err)
	t.handleServiceError(w, err)
}

func decodeError(err error) *errs.AppError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "url" {
		return &errs.AppError{Kind: errs.InvalidInput, Message: errURLRequired.Message, Cause: err}
	}
	return &errs.AppError{Kind: errs.InvalidInput, Message: "Invalid request body", Cause: err}
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleServiceError answers every analysis failure with 400. Only the
// message distinguishes a bad URL from an unreachable page.
func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		t.renderError(w, http.StatusBadRequest, appErr.Message)
		return
	}

	t.renderError(w, http.StatusBadRequest, "Analyze failed")
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{Error: message})
}
