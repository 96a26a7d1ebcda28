package controllers

import (
	"errors"
	"net/http"
	"potatoguard/internal/models"

	json "github.com/goccy/go-json"
)

// notification is the JSON error body every handler renders. The front-end
// shows it as a toast, so the message must stay user-facing.
type notification struct {
	Error string `json:"error"`
	Title string `json:"title"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, notification{Error: message, Title: title})
}

// writeServiceError maps a typed service error onto a status code and a
// notification body. Remote detail messages pass through verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	var authErr *models.AuthError
	var analysisErr *models.AnalysisError
	var historyErr *models.HistoryError
	var feedbackErr *models.FeedbackError

	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "Validation Error", vErr.Reason)
	case errors.Is(err, models.ErrLoginRequired):
		writeError(w, http.StatusUnauthorized, "Login Required", err.Error())
	case errors.Is(err, models.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, "Analysis In Progress", err.Error())
	case errors.Is(err, models.ErrHistoryNotLoaded):
		writeError(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, models.ErrImageUnavailable):
		writeError(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, "Authentication Failed", authErr.Error())
	case errors.As(err, &analysisErr):
		writeError(w, http.StatusBadGateway, "Analysis Failed", analysisErr.Error())
	case errors.As(err, &historyErr):
		writeError(w, http.StatusBadGateway, "History Unavailable", historyErr.Error())
	case errors.As(err, &feedbackErr):
		writeError(w, http.StatusBadGateway, "Feedback Unavailable", feedbackErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Error", "Something went wrong. Please try again.")
	}
}
