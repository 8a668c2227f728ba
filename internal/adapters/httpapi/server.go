// Package httpapi exposes scans over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// maxBodyBytes bounds the size of a scan request body.
const maxBodyBytes = 1 << 16

// Server routes HTTP requests to a ScanService.
type Server struct {
	svc     ports.ScanService
	auth    ports.Authorizer
	logger  ports.Logger
	metrics http.Handler
	scanCtx context.Context //nolint:containedctx // Bounds background scans, not requests.
	router  *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithScanContext sets the context that bounds scans started through the API.
// Request contexts end with the response, so they cannot be used for background work.
func WithScanContext(ctx context.Context) Option {
	return func(s *Server) {
		s.scanCtx = ctx
	}
}

// NewServer creates a Server and registers its routes.
func NewServer(svc ports.ScanService, auth ports.Authorizer, logger ports.Logger, opts ...Option) *Server {
	s := &Server{
		svc:     svc,
		auth:    auth,
		logger:  logger,
		scanCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/scans", s.handleStartScan)
		r.Get("/scans/{id}", s.handleReport)
		r.Get("/scans/{id}/progress", s.handleProgress)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type tokenKey struct{}

// requireToken authorizes the bearer token and keeps it on the request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if err := s.auth.Authorize(r.Context(), token); err != nil {
			s.respondError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), tokenKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// startScanRequest is the optional body of POST /v1/scans.
type startScanRequest struct {
	Source  string `json:"source"`
	Version string `json:"version"`
	Root    string `json:"root"`
}

type startScanResponse struct {
	Session domain.SessionID `json:"session"`
}

type progressResponse struct {
	Session  domain.SessionID `json:"session"`
	Progress float64          `json:"progress"`
	Found    bool             `json:"found"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleStartScan(w http.ResponseWriter, r *http.Request) {
	var req startScanRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	opts := ports.ScanOptions{
		Token:   tokenFrom(r.Context()),
		Version: req.Version,
		Root:    req.Root,
	}
	if req.Source != "" {
		opts.Source = domain.Source(req.Source)
	}

	//nolint:contextcheck // The scan outlives the request.
	session, err := s.svc.StartScan(s.scanCtx, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, startScanResponse{Session: session})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	session, err := domain.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	percent, found, err := s.svc.Progress(r.Context(), session)
	if err != nil {
		s.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, progressResponse{Session: session, Progress: percent, Found: found})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	session, err := domain.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.svc.Report(r.Context(), session)
	if err != nil {
		s.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSession),
		errors.Is(err, domain.ErrInvalidVersion),
		errors.Is(err, domain.ErrVersionRequired),
		errors.Is(err, domain.ErrScanRootInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
