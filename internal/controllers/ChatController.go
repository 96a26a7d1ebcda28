package controllers

import (
	"net/http"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"

	json "github.com/goccy/go-json"
)

type ChatController struct {
	logger providers.Logger
	chat   services.ChatServiceInterface
}

func NewChatController(logger providers.Logger, chat services.ChatServiceInterface) *ChatController {
	return &ChatController{
		logger: logger,
		chat:   chat,
	}
}

func (cc *ChatController) Message(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "Invalid request body.")
		return
	}

	reply, err := cc.chat.Reply(r.Context(), payload.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}
