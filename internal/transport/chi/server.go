package chi

import (
	"errors"
	"net"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
	"github.com/fmd-labs/fmd/internal/domain/search/request"
	logpkg "github.com/fmd-labs/fmd/internal/logger"
	designuc "github.com/fmd-labs/fmd/internal/usecase/design"
	healthuc "github.com/fmd-labs/fmd/internal/usecase/health"
	"github.com/fmd-labs/fmd/internal/validation"
	"github.com/fmd-labs/fmd/internal/version"
)

// maxBodyBytes bounds request bodies; canvas data URLs dominate the size.
const maxBodyBytes = 10 << 20

// ServerDeps groups the services behind the HTTP API.
type ServerDeps struct {
	Designs   DesignService
	Jobs      JobStatusReader
	Search    SearchService
	Health    HealthChecker
	Providers ProviderLister
	// SearchDefaults fills in provider and limit defaults of search requests.
	SearchDefaults request.Defaults
	Logger         *zap.Logger
}

// Server holds the HTTP handlers of the API.
type Server struct {
	designs        DesignService
	jobs           JobStatusReader
	search         SearchService
	health         HealthChecker
	providers      ProviderLister
	searchDefaults request.Defaults
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(d ServerDeps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		designs:        d.Designs,
		jobs:           d.Jobs,
		search:         d.Search,
		health:         d.Health,
		providers:      d.Providers,
		searchDefaults: d.SearchDefaults,
		logger:         logger,
		errorHandlers:  defaultErrorHandlers(),
	}
}

// requestLogger returns the request-scoped logger placed by the router, which
// carries request_id, or the server logger outside the router.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.designs.CreateSession(r.Context(), r.UserAgent(), clientIP(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: sess.ID()})
}

// GetHistory handles GET /api/sessions/{id}/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := gochi.URLParam(r, "id")

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter limit")
		return
	}
	n := 0
	if limit != nil {
		if *limit < 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must not be negative")
			return
		}
		n = *limit
	}

	entries, err := s.designs.History(r.Context(), sessionID, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]HistoryItem, len(entries))
	for i, e := range entries {
		items[i] = historyItem(e)
	}
	writeJSON(w, http.StatusOK, HistoryResponse{
		SessionID: sessionID,
		Items:     items,
		Total:     len(items),
	})
}

// CreateDesign handles POST /api/designs.
func (s *Server) CreateDesign(w http.ResponseWriter, r *http.Request) {
	var req CreateDesignRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	d, err := s.designs.CreateDesign(r.Context(), designuc.CreateInput{
		SessionID:    req.SessionID,
		InputMode:    domdesign.InputMode(req.InputMode),
		CategoryHint: req.CategoryHint,
		TextPrompt:   req.TextPrompt,
		CanvasData:   req.CanvasData,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DesignResponse{DesignID: d.ID(), Status: string(d.Status())})
}

// ProcessDesign handles POST /api/designs/{id}/process.
func (s *Server) ProcessDesign(w http.ResponseWriter, r *http.Request) {
	j, err := s.designs.Process(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.requestLogger(r).Info("Design processing requested",
		zap.String("job_id", j.ID),
		zap.String("status", string(j.Status)),
	)
	writeJSON(w, http.StatusAccepted, ProcessResponse{JobID: j.ID, Status: string(j.Status)})
}

// GetJob handles GET /api/jobs/{id}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	snap, err := s.jobs.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobStatusFromSnapshot(snap))
}

// SearchProducts handles POST /api/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := validation.Struct(body); err != nil {
		writeValidationError(w, err)
		return
	}

	req, err := request.New(body.DesignID, body.Providers, body.Limit, s.searchDefaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultItem(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: items})
}

// ListProviders handles GET /api/providers.
func (s *Server) ListProviders(w http.ResponseWriter, _ *http.Request) {
	ids := s.providers.IDs()
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: ids})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
		s.requestLogger(r).Warn("Health check not ok",
			zap.String("status", string(report.Status)),
			zap.Strings("open_circuits", report.OpenCircuits),
		)
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:       string(report.Status),
		Version:      version.String(),
		Checks:       checks,
		OpenCircuits: report.OpenCircuits,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v. It writes the error response and returns
// false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
