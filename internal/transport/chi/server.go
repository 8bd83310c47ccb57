package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/claimlens/internal/domain"
	"github.com/kailas-cloud/claimlens/internal/logger"
	detectuc "github.com/kailas-cloud/claimlens/internal/usecase/detect"
	healthuc "github.com/kailas-cloud/claimlens/internal/usecase/health"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the claim verification HTTP API.
type Server struct {
	detect        *detectuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(detect *detectuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		detect: detect,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		searchFailedHandler,
		sentinelHandler(domain.ErrMissingClaim, http.StatusBadRequest, "Missing 'claim' field"),
		upstreamHandler(domain.ErrSummarize),
		upstreamHandler(domain.ErrVerdict),
	}
	return s
}

// Routes registers the API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/detect", s.DetectClaim)
	r.Get("/healthz", s.Healthz)
}

// detectRequest is the POST /detect request body.
type detectRequest struct {
	Claim string `json:"claim"`
}

// DetectClaim handles POST /detect. A malformed body is tolerated: the
// claim falls back to the `claim` query parameter.
func (s *Server) DetectClaim(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	_ = json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req)

	claim := req.Claim
	if claim == "" {
		claim = r.URL.Query().Get("claim")
	}
	if strings.TrimSpace(claim) == "" {
		writeError(w, http.StatusBadRequest, "Missing 'claim' field")
		return
	}

	verdict, err := s.detect.Detect(r.Context(), claim)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Warn("pipeline error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error and responds with a fixed message.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

// upstreamHandler returns an errorHandler that maps a provider failure to
// 502, passing the underlying message through to the caller.
func upstreamHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return true
	}
}

// searchFailedHandler handles retrieval failures with the extra search_query
// field, so the caller can see what was searched.
func searchFailedHandler(w http.ResponseWriter, err error) bool {
	var sfe *domain.SearchFailedError
	if !errors.As(err, &sfe) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{
		"error":        sfe.Error(),
		"search_query": sfe.Query,
	})
	return true
}
