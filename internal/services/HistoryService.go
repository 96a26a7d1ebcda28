package services

import (
	"context"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/remote"
)

type HistoryServiceInterface interface {
	List(ctx context.Context, sid string) ([]models.HistoryItem, error)
	Replay(sid, id string) error
}

type HistoryService struct {
	client   remote.ApiClientInterface
	sessions SessionServiceInterface
	logger   providers.Logger
}

func NewHistoryService(client remote.ApiClientInterface, sessions SessionServiceInterface, logger providers.Logger) HistoryServiceInterface {
	return &HistoryService{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// List fetches the caller's full history and keeps the hydrated items in
// the session so a later replay never has to touch the network.
func (s *HistoryService) List(ctx context.Context, sid string) ([]models.HistoryItem, error) {
	user, ok := s.sessions.LoadUser(sid)
	if !ok {
		return nil, models.ErrLoginRequired
	}

	items, err := s.client.History(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.HistoryItem{}
	}

	if err := s.sessions.StashHistory(sid, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Replay reconstructs a past result from the session's hydrated history
// cache and stashes it for the results route. Pure transform, no network.
func (s *HistoryService) Replay(sid, id string) error {
	if _, ok := s.sessions.LoadUser(sid); !ok {
		return models.ErrLoginRequired
	}

	items, ok := s.sessions.LoadHistory(sid)
	if !ok {
		return models.ErrHistoryNotLoaded
	}

	for i := range items {
		if items[i].ID == id {
			return s.sessions.StashResult(sid, ReplayItem(&items[i]))
		}
	}
	return models.ErrHistoryNotLoaded
}

// ReplayItem wraps a history record back into the shape the results route
// consumes. The hydrated base64 image wins over the remote URL, per the
// same priority rule the display resolver applies.
func ReplayItem(item *models.HistoryItem) *models.AnalysisResult {
	image := item.ImageURL
	if models.ClassifyRef(item.ImageBase64) == models.RefInlineData {
		image = item.ImageBase64
	}

	detections := item.Detections
	if detections == nil {
		detections = []models.Detection{}
	}

	return &models.AnalysisResult{
		Image: image,
		Result: models.ResultPayload{
			Detections: detections,
			ImageURL:   item.ImageURL,
		},
	}
}
