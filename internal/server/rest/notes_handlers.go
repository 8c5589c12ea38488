package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/quicknotes/internal/server/models"
	"github.com/dmitrijs2005/quicknotes/internal/server/services"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	Note *models.Note `json:"note"`
}

func (s *HTTPServer) handleListNotes(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountIDFromContext(r.Context())

	q := r.URL.Query()
	query, err := services.ParseNoteQuery(q.Get("search"), q.Get("page"), q.Get("limit"))
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch notes")
		return
	}

	list, err := s.notes.List(r.Context(), accountID, query)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch notes")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountIDFromContext(r.Context())

	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err, "Failed to create note")
		return
	}

	note, err := s.notes.Create(r.Context(), accountID, req.Title, req.Content)
	if err != nil {
		s.writeError(w, r, err, "Failed to create note")
		return
	}

	writeJSON(w, http.StatusCreated, noteResponse{Note: note})
}

func (s *HTTPServer) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountIDFromContext(r.Context())

	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err, "Failed to update note")
		return
	}

	err := s.notes.Update(r.Context(), accountID, noteID(r), req.Title, req.Content)
	if err != nil {
		s.writeError(w, r, err, "Failed to update note")
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: "Note updated successfully"})
}

func (s *HTTPServer) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountIDFromContext(r.Context())

	if err := s.notes.Delete(r.Context(), accountID, noteID(r)); err != nil {
		s.writeError(w, r, err, "Failed to delete note")
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: "Note deleted successfully"})
}

// noteID returns 0 for ids that are not positive integers; no stored note
// has id 0, so such requests end in the regular not-found answer.
func noteID(r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}
