package controllers

import (
	"net/http"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"

	json "github.com/goccy/go-json"
)

type HistoryController struct {
	logger  providers.Logger
	history services.HistoryServiceInterface
}

func NewHistoryController(logger providers.Logger, history services.HistoryServiceInterface) *HistoryController {
	return &HistoryController{
		logger:  logger,
		history: history,
	}
}

type historySummary struct {
	models.HistoryItem
	PrimaryClass string `json:"primary_class"`
	Healthy      bool   `json:"healthy"`
}

func (hc *HistoryController) List(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	items, err := hc.history.List(r.Context(), c.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summaries := make([]historySummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, historySummary{
			HistoryItem:  item,
			PrimaryClass: models.PrimaryClass(item.Detections),
			Healthy:      models.IsHealthy(item.Detections),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": summaries})
}

func (hc *HistoryController) Replay(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		writeError(w, http.StatusBadRequest, "Validation Error", "A history item id is required.")
		return
	}

	if err := hc.history.Replay(c.Value, payload.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/results"})
}
