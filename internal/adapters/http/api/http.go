// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/unzippd/portfolio/internal/adapters/repository"
	"github.com/unzippd/portfolio/internal/mail"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze runs the similarity pipeline over an uploaded table.
	Analyze(ctx context.Context, payload io.Reader, metric string) (repository.Run, error)

	// SendContact validates and relays a contact-form message.
	SendContact(ctx context.Context, msg mail.Message) error

	// QR generation, inline bytes or saved under the static root.
	QRInline(ctx context.Context, url string) ([]byte, error)
	QRSave(ctx context.Context, url, name string) (string, error)

	// RecentRuns returns up to n analysis runs, newest first.
	RecentRuns(ctx context.Context, n int) ([]repository.Run, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	analysisHandler  *AnalysisHandler
	contactHandler   *ContactHandler
	qrHandler        *QRHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		analysisHandler:  NewAnalysisHandler(deps),
		contactHandler:   NewContactHandler(deps),
		qrHandler:        NewQRHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider, deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux. Methods are part of the
// patterns so GET /contact stays free for the site's contact page.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /analysis", MetricsMiddleware(s.analysisHandler.HandlePostAnalysis, "analysis"))
	mux.HandleFunc("POST /contact", MetricsMiddleware(s.contactHandler.HandlePostContact, "contact"))
	mux.HandleFunc("GET /qr", MetricsMiddleware(s.qrHandler.HandleGetQR, "qr"))
}

// analysisResponse mirrors the OpenAPI schema for POST /analysis.
type analysisResponse struct {
	RunID  string  `json:"run_id"`
	Metric string  `json:"metric"`
	UserA  string  `json:"user_a"`
	UserB  string  `json:"user_b"`
	Score  float64 `json:"score"`
	Rows   int     `json:"rows"`
	Users  int     `json:"users"`
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
