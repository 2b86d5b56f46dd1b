// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/unzippd/portfolio/internal/qr"
)

// QRHandler handles QR code requests.
type QRHandler struct {
	deps Dependencies
}

// NewQRHandler creates a new QR handler.
func NewQRHandler(deps Dependencies) *QRHandler {
	return &QRHandler{deps: deps}
}

// qrSavedResponse reports where a downloaded code landed.
type qrSavedResponse struct {
	Path string `json:"path"`
}

// HandleGetQR handles GET /qr?url=...&name=...&download=1 requests. Without
// download the PNG streams inline; with it the code is saved under the
// static root and its web path returned.
func (h *QRHandler) HandleGetQR(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_qr"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	url := q.Get("url")

	if q.Get("download") != "" {
		webPath, err := h.deps.QRSave(r.Context(), url, q.Get("name"))
		if err != nil {
			writeError(w, qrStatus(err), "qr_failed", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, qrSavedResponse{Path: webPath})
		return
	}

	png, err := h.deps.QRInline(r.Context(), url)
	if err != nil {
		writeError(w, qrStatus(err), "qr_failed", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func qrStatus(err error) int {
	if errors.Is(err, qr.ErrEmptyURL) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
