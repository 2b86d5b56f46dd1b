// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/unzippd/portfolio/internal/app"
	"github.com/unzippd/portfolio/internal/mail"
)

// ContactHandler handles contact-form submissions.
type ContactHandler struct {
	deps Dependencies
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(deps Dependencies) *ContactHandler {
	return &ContactHandler{deps: deps}
}

// HandlePostContact handles POST /contact requests. The message arrives as
// JSON or classic form fields, matching the embedded contact page.
func (h *ContactHandler) HandlePostContact(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_contact"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	msg, err := decodeContact(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch err := h.deps.SendContact(r.Context(), msg); {
	case err == nil:
		writeJSON(w, http.StatusOK, ackResponse{Status: "sent"})
	case errors.Is(err, mail.ErrInvalidMessage):
		writeError(w, http.StatusBadRequest, "invalid_message", Wrap(op, err))
	case errors.Is(err, app.ErrDuplicateSubmission):
		writeError(w, http.StatusConflict, "duplicate", Wrap(op, err))
	default:
		writeError(w, http.StatusBadGateway, "relay_failed", Wrap(op, err))
	}
}

func decodeContact(r *http.Request) (mail.Message, error) {
	var msg mail.Message
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			return mail.Message{}, err
		}
		return msg, nil
	}
	if err := r.ParseForm(); err != nil {
		return mail.Message{}, err
	}
	msg.Name = r.PostFormValue("name")
	msg.Email = r.PostFormValue("email")
	msg.Subject = r.PostFormValue("subject")
	msg.Body = r.PostFormValue("message")
	return msg, nil
}
