package handlers

import (
	"encoding/json"
	"errors"
	"huddle/internal/core/domain"
	"huddle/internal/core/services"
	"huddle/pkg/logging"
	"huddle/pkg/middleware"
	"net/http"
)

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to status codes. Unknown errors are logged
// and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "handler - request failed", logging.Err(err))
		msg = "Internal Server Error"
	}
	writeJSON(w, status, errorBody{Message: msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound), errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotMember), errors.Is(err, domain.ErrNotAdmin),
		errors.Is(err, domain.ErrNotAuthorized), errors.Is(err, domain.ErrNotSender):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidGroupID), errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrGroupNameRequired), errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrRemoveAdmin), errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return false
	}
	return true
}

// caller returns the authenticated user or answers 401.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Unauthorized: user id missing"})
		return "", false
	}
	return userID, true
}
