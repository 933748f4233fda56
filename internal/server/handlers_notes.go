package server

import (
	"log"
	"net/http"

	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/server/middleware"
	"github.com/jonathan/mindwise/internal/types"
)

// NoteListResponse is the body of a note listing
type NoteListResponse struct {
	Notes []db.Note `json:"notes"`
	Total int       `json:"total"`
}

// handleCreateNote attaches a note to one of the caller's job applications.
// Notes are stored only; they are never part of an analysis request.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	jobID, err := pathUUID(r, "job_id", errJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	note, err := s.store.CreateNote(r.Context(), userID, jobID, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if note == nil {
		writeError(w, r, errJobNotFound)
		return
	}

	log.Printf("[NOTES] Created note %s for job %s", note.ID, jobID)
	jsonResponse(w, http.StatusCreated, note)
}

// handleListNotes lists the notes of one of the caller's job applications
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	jobID, err := pathUUID(r, "job_id", errJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// An empty listing cannot tell a foreign job from a job without notes.
	job, err := s.store.GetJobApplication(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if job == nil {
		writeError(w, r, errJobNotFound)
		return
	}

	notes, err := s.store.ListNotes(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, NoteListResponse{Notes: notes, Total: len(notes)})
}

// handleDeleteNote deletes a note on one of the caller's job applications
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	noteID, err := pathUUID(r, "note_id", errNoteNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	deleted, err := s.store.DeleteNote(r.Context(), userID, noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, r, errNoteNotFound)
		return
	}

	log.Printf("[NOTES] Deleted note %s", noteID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
