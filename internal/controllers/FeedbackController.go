package controllers

import (
	"net/http"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"
	"strconv"

	json "github.com/goccy/go-json"
)

const defaultTestimonialCount = 3

type FeedbackController struct {
	logger   providers.Logger
	feedback services.FeedbackServiceInterface
}

func NewFeedbackController(logger providers.Logger, feedback services.FeedbackServiceInterface) *FeedbackController {
	return &FeedbackController{
		logger:   logger,
		feedback: feedback,
	}
}

func (fc *FeedbackController) List(w http.ResponseWriter, r *http.Request) {
	listing, err := fc.feedback.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (fc *FeedbackController) Random(w http.ResponseWriter, r *http.Request) {
	limit := defaultTestimonialCount
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	items, degraded := fc.feedback.Testimonials(r.Context(), limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"items":    items,
		"degraded": degraded,
	})
}

func (fc *FeedbackController) Submit(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "Invalid request body.")
		return
	}

	if err := fc.feedback.Submit(r.Context(), c.Value, payload.Rating, payload.Comment); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Thank you for your feedback!"})
}
