// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/unzippd/portfolio/internal/domain/encode"
	"github.com/unzippd/portfolio/internal/domain/metric"
	"github.com/unzippd/portfolio/internal/domain/pair"
	"github.com/unzippd/portfolio/internal/tabular"
	"github.com/unzippd/portfolio/internal/upload"
)

// AnalysisHandler handles analysis requests.
type AnalysisHandler struct {
	deps Dependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps Dependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

// HandlePostAnalysis handles POST /analysis requests. The table travels as
// the multipart field "file"; the optional "metric" field or query parameter
// selects the comparison strategy.
func (h *AnalysisHandler) HandlePostAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_analysis"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	metricName := r.FormValue("metric")
	if metricName == "" {
		metricName = r.URL.Query().Get("metric")
	}

	run, err := h.deps.Analyze(r.Context(), file, metricName)
	if err != nil {
		status, code := analysisStatus(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		RunID:  run.ID,
		Metric: run.Metric,
		UserA:  run.Match.UserA,
		UserB:  run.Match.UserB,
		Score:  run.Match.Score,
		Rows:   run.Rows,
		Users:  run.Users,
	})
}

// analysisStatus maps pipeline error kinds to HTTP status and error code.
func analysisStatus(err error) (int, string) {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, metric.ErrUnknownMetric):
		return http.StatusBadRequest, "unknown_metric"
	case errors.Is(err, tabular.ErrBadFormat):
		return http.StatusBadRequest, "file_format_error"
	case errors.Is(err, encode.ErrParse):
		return http.StatusBadRequest, "parse_error"
	case errors.Is(err, pair.ErrInsufficientUsers):
		return http.StatusBadRequest, "insufficient_users"
	case errors.Is(err, pair.ErrDegenerateVector):
		return http.StatusBadRequest, "degenerate_vector"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
