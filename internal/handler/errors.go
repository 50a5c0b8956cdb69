package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// errorDetail is the body of every non-2xx JSON response:
// {"error":{"code":"not_found","message":"trip: not found"}}
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeError maps a service error onto a status code:
// ErrNotFound is 404, ErrConflict is 409, ErrValidation is 422, anything
// else is logged and reported as 500 without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, "conflict", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage strips the "pkg.Type.Method: " frames that layers add while
// wrapping, leaving the human-readable tail.
// e.g. "service.FleetService.GetTrip: repo.TripRepo.GetByID: trip: not found" -> "trip: not found"
func unwrapMessage(err error) string {
	msg := err.Error()
	for {
		head, tail, ok := strings.Cut(msg, ": ")
		if !ok || !isFrame(head) {
			return msg
		}
		msg = tail
	}
}

// isFrame reports whether s looks like "repo.TripRepo.GetByID".
func isFrame(s string) bool {
	return strings.Contains(s, ".") && !strings.ContainsAny(s, " \t")
}

// decodeBody reads a JSON request body into v. Failures are written as 422
// (or 413 when the body exceeds the size limit) and reported as false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorBody(w, http.StatusRequestEntityTooLarge, "payload_too_large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID parses a UUID path parameter. An invalid value is written as 422.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", fmt.Sprintf("%s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads ?page= and ?limit= with defaults page=1, limit=20, max=100.
func pagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.ParsePagination(q.Get("page"), q.Get("limit"))
}
