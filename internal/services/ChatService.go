package services

import (
	"context"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/remote"
	"strings"
)

// ChatApology is the fixed reply served when the assistant backend fails.
// The chat surface is advisory: failures degrade, they never propagate.
const ChatApology = "Sorry, I encountered an error. Please try again."

type ChatServiceInterface interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatService struct {
	client  remote.ApiClientInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewChatService(client remote.ApiClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ChatServiceInterface {
	return &ChatService{
		client:  client,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &models.ValidationError{Reason: "Please enter a message."}
	}

	reply, err := s.client.Chat(ctx, message)
	if err != nil {
		s.logger.Warnf(providers.TypePost, "Chat degraded to apology: %s", err)
		s.metrics.IncFallbacks("chat")
		return ChatApology, nil
	}
	return reply, nil
}
