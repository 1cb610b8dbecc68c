// Package server exposes the housing projection and the CT decision tree as a
// JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/housing-advisor/internal/advice"
	"github.com/iwvelando/housing-advisor/internal/config"
	"github.com/iwvelando/housing-advisor/internal/ctdecision"
	"github.com/iwvelando/housing-advisor/internal/report"
	"github.com/iwvelando/housing-advisor/internal/scenario"
	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/iwvelando/housing-advisor/pkg/finance"
	"github.com/iwvelando/housing-advisor/pkg/loans"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options tune the handler. Zero values select defaults.
type Options struct {
	MaxRequestSize int64
	Version        string
	Metrics        *Metrics
	RateLimiter    *RateLimiter
}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	metrics        *Metrics
	comparator     *scenario.Comparator
	tree           *ctdecision.Tree
}

// NewHandler constructs the HTTP handler that serves the projection and CT APIs.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestSize := opts.MaxRequestSize
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		metrics:        metrics,
		comparator:     scenario.NewComparator(logger),
		tree:           ctdecision.Default(),
	}

	mux := http.NewServeMux()
	routes := map[string]http.HandlerFunc{
		"/api/projection":   h.handleProjection,
		"/api/ct/questions": h.handleCTQuestions,
		"/api/ct/evaluate":  h.handleCTEvaluate,
		"/api/version":      h.handleVersion,
		"/healthz":          h.handleHealth,
	}
	known := map[string]bool{"/metrics": true}
	for path, fn := range routes {
		var route http.Handler = fn
		if opts.RateLimiter != nil && strings.HasPrefix(path, "/api/") {
			route = opts.RateLimiter.middleware(h, route)
		}
		mux.Handle(path, route)
		known[path] = true
	}
	mux.Handle("/metrics", metrics.Handler())

	return metrics.instrument(logger, known, mux)
}

type projectionResponse struct {
	Summary  *scenario.Summary `json:"summary"`
	Advice   []advice.Advice   `json:"advice"`
	CSV      string            `json:"csv"`
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	payload, ok := h.decodeBody(w, r, op)
	if !ok {
		return
	}

	// The payload has the same shape as the YAML configuration file, so it
	// goes through the same loader and picks up the same defaults.
	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.projectionFailed(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.projectionFailed(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	summary, err := h.comparator.Compare(cfg.ToInputs())
	if err != nil {
		h.projectionFailed(w, statusForProjectionError(err), err.Error(), op)
		return
	}
	warnings = append(warnings, summary.Warnings...)

	var csv bytes.Buffer
	if err := report.CSV(&csv, summary); err != nil {
		h.projectionFailed(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.metrics.projections.WithLabelValues("ok").Inc()
	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.String("requestId", r.Header.Get(RequestIDHeader)),
		zap.Float64("netWorthDifference", summary.NetWorth.Difference),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, projectionResponse{
		Summary:  summary,
		Advice:   advice.Generate(summary),
		CSV:      csv.String(),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) projectionFailed(w http.ResponseWriter, status int, msg, op string) {
	h.metrics.projections.WithLabelValues("error").Inc()
	h.respondErrorWithOp(w, status, msg, op)
}

// statusForProjectionError maps domain errors to HTTP status codes.
func statusForProjectionError(err error) int {
	switch {
	case errors.Is(err, finance.ErrPensionAgeExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loans.ErrInvalidTerm),
		errors.Is(err, loans.ErrInvalidLoan),
		errors.Is(err, finance.ErrInvalidInvestment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type ctQuestionsResponse struct {
	Start     ctdecision.NodeID     `json:"start"`
	Questions []ctdecision.Question `json:"questions"`
}

func (h *handler) handleCTQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, ctQuestionsResponse{
		Start:     h.tree.Start(),
		Questions: h.tree.Questions(),
	})
}

type ctEvaluateRequest struct {
	// Answers are applied in the order questions are asked.
	Answers []ctdecision.Answer `json:"answers"`
	// AnswersByNode keys answers by question ID and takes precedence.
	AnswersByNode map[ctdecision.NodeID]ctdecision.Answer `json:"answersByNode"`
}

type ctEvaluateResponse struct {
	ctdecision.Result
	Color          string               `json:"color,omitempty"`
	Recommendation string               `json:"recommendation"`
	NextQuestion   *ctdecision.Question `json:"nextQuestion,omitempty"`
}

func (h *handler) handleCTEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCTEvaluate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	var req ctEvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondErrorWithOp(w, requestErrorStatus(err), fmt.Sprintf("failed to decode answers: %v", err), op)
		return
	}

	var result ctdecision.Result
	if req.AnswersByNode != nil {
		result = h.tree.EvaluateByNode(req.AnswersByNode)
	} else {
		result = h.tree.Evaluate(req.Answers)
	}

	resp := ctEvaluateResponse{
		Result:         result,
		Color:          result.Outcome.Color(),
		Recommendation: result.Outcome.Recommendation(),
	}
	if !result.Done() {
		q, err := h.tree.Question(result.Next)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		resp.NextQuestion = &q
	}

	h.metrics.ctOutcomes.WithLabelValues(result.Outcome.String()).Inc()
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads a JSON object, treating an empty body as an empty object.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		h.projectionFailed(w, requestErrorStatus(err), fmt.Sprintf("failed to decode configuration: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

func requestErrorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// Run serves handler on cfg.Address until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func Run(ctx context.Context, cfg *Config, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "server.Run"),
			zap.String("address", listener.Addr().String()),
		)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down server", zap.String("op", "server.Run"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	logger.Info("server exited", zap.String("op", "server.Run"))
	return nil
}
