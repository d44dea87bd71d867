package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/logging"
	"github.com/grayman/dealflows/internal/version"
)

// fieldErrorJSON is one entry of a 422 contact response
type fieldErrorJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// contactResponse is the JSON body of POST /p/{id}/contact
type contactResponse struct {
	Status string           `json:"status,omitempty"`
	Errors []fieldErrorJSON `json:"errors,omitempty"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleMount)
	mux.HandleFunc("GET /p/{id}", s.handlePage)
	mux.HandleFunc("POST /p/{id}/menu", s.handleMenu)
	mux.HandleFunc("POST /p/{id}/contact", s.handleContact)
	mux.HandleFunc("GET /p/{id}/state", s.handleState)
	mux.HandleFunc("GET /p/{id}/ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return requestLogger(mux)
}

// handleMount creates a fresh page for every load of /
func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	id, page, err := s.pages.create(s.ctx)
	if err != nil {
		logging.Error("Failed to mount page", zap.Error(err))
		http.Error(w, "failed to mount page", http.StatusInternalServerError)
		return
	}
	s.writePage(w, http.StatusOK, id, page.Snapshot(), nil)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page, err := s.pages.get(id)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.writePage(w, http.StatusOK, id, page.Snapshot(), nil)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page, ok := s.lookup(w, r, id)
	if !ok {
		return
	}

	open, err := page.ToggleMenu()
	if err != nil {
		s.pageGone(w, r)
		return
	}
	logging.Debug("Menu toggled", zap.String("page_id", id), zap.Bool("open", open))

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, page.Snapshot())
		return
	}
	http.Redirect(w, r, "/p/"+id, http.StatusSeeOther)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page, ok := s.lookup(w, r, id)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	in := landing.ContactInput{
		Name:     r.PostFormValue(landing.FieldName),
		Email:    r.PostFormValue(landing.FieldEmail),
		Interest: formInterest(r.PostFormValue(landing.FieldInterest)),
		Message:  r.PostFormValue(landing.FieldMessage),
	}

	err := page.SubmitContact(in)
	var vErr *landing.ValidationError
	switch {
	case errors.As(err, &vErr):
		logging.Debug("Contact submission rejected", zap.String("page_id", id), zap.Error(err))
		if wantsJSON(r) {
			resp := contactResponse{Errors: make([]fieldErrorJSON, 0, len(vErr.Fields))}
			for _, f := range vErr.Fields {
				resp.Errors = append(resp.Errors, fieldErrorJSON{Field: f.Field, Message: f.Message})
			}
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		s.writePage(w, http.StatusUnprocessableEntity, id, page.Snapshot(), vErr)
		return
	case errors.Is(err, landing.ErrPageUnmounted):
		s.pageGone(w, r)
		return
	case err != nil:
		logging.Error("Contact submission failed", zap.String("page_id", id), zap.Error(err))
		http.Error(w, "submission failed", http.StatusInternalServerError)
		return
	}

	logging.LogSubmission(id, string(in.Interest), len(strings.TrimSpace(in.Message)))

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, contactResponse{Status: page.Snapshot().Status})
		return
	}
	http.Redirect(w, r, "/p/"+id+"#contact", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.get(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, page.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"pages":   s.pages.len(),
	})
}

// formInterest normalizes the posted interest. Unknown values are passed
// through so validation reports them against the interest field.
func formInterest(v string) landing.Interest {
	interest, err := landing.ParseInterest(v)
	if err != nil {
		return landing.Interest(strings.TrimSpace(v))
	}
	return interest
}

// lookup resolves the page id, answering the request itself when it is unknown
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (*landing.Page, bool) {
	page, err := s.pages.get(id)
	if err != nil {
		s.pageGone(w, r)
		return nil, false
	}
	return page, true
}

// pageGone answers a request for a page that no longer exists: JSON clients
// get a 404, browsers are sent to / for a fresh mount
func (s *Server) pageGone(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": errPageNotFound.Error()})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) writePage(w http.ResponseWriter, status int, id string, snap landing.Snapshot, vErr *landing.ValidationError) {
	var buf bytes.Buffer
	if err := s.renderPage(&buf, newPageView(id, snap, vErr)); err != nil {
		logging.Error("Failed to render page", zap.String("page_id", id), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to encode JSON response", zap.Error(err))
	}
}
