package services

import (
	"context"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/remote"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
)

// FeedbackListing carries the full feedback list plus the id of the newest
// entry, found by a linear timestamp scan; server ordering is not trusted.
type FeedbackListing struct {
	Items    []models.FeedbackItem `json:"items"`
	NewestID string                `json:"newest_id,omitempty"`
}

type FeedbackServiceInterface interface {
	List(ctx context.Context) (*FeedbackListing, error)
	Testimonials(ctx context.Context, limit int) ([]models.FeedbackItem, bool)
	Submit(ctx context.Context, sid string, rating int, comment string) error
}

type FeedbackService struct {
	client   remote.ApiClientInterface
	sessions SessionServiceInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewFeedbackService(client remote.ApiClientInterface, sessions SessionServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) FeedbackServiceInterface {
	return &FeedbackService{
		client:   client,
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *FeedbackService) List(ctx context.Context) (*FeedbackListing, error) {
	items, err := s.client.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.FeedbackItem{}
	}

	return &FeedbackListing{
		Items:    items,
		NewestID: newestFeedbackID(items),
	}, nil
}

func newestFeedbackID(items []models.FeedbackItem) string {
	var newestID string
	var newestTS time.Time

	for _, item := range items {
		ts, err := time.Parse(time.RFC3339, item.Timestamp)
		if err != nil {
			continue
		}
		if newestID == "" || ts.After(newestTS) {
			newestID = item.ID
			newestTS = ts
		}
	}
	return newestID
}

// Testimonials returns a random sample from the backend, degrading to fixed
// sample entries when the backend is down. The degradation is explicit: it
// is logged, counted, and flagged to the caller so the UI can show an error
// banner next to the fallback content.
func (s *FeedbackService) Testimonials(ctx context.Context, limit int) ([]models.FeedbackItem, bool) {
	items, err := s.client.RandomFeedback(ctx, limit)
	if err != nil {
		s.logger.Errorf(providers.TypeGet, "Testimonials unavailable, serving samples: %s", err)
		s.metrics.IncFallbacks("testimonials")
		return sampleTestimonials(), true
	}
	if items == nil {
		items = []models.FeedbackItem{}
	}
	return items, false
}

func sampleTestimonials() []models.FeedbackItem {
	now := time.Now()
	return []models.FeedbackItem{
		{
			ID:        "sample-" + uuid.NewString(),
			Username:  "FarmerJoe",
			Rating:    5,
			Comment:   "PotatoGuard has transformed how I monitor my crops. Highly recommended!",
			Timestamp: now.Format(time.RFC3339),
		},
		{
			ID:        "sample-" + uuid.NewString(),
			Username:  "AgriTech",
			Rating:    5,
			Comment:   "An essential tool for modern farming. The AI detection is impressively accurate.",
			Timestamp: now.Add(-24 * time.Hour).Format(time.RFC3339),
		},
		{
			ID:        "sample-" + uuid.NewString(),
			Username:  "CropSpecialist",
			Rating:    4,
			Comment:   "Great interface and easy to use. Helps me catch potato diseases early.",
			Timestamp: now.Add(-48 * time.Hour).Format(time.RFC3339),
		},
	}
}

func (s *FeedbackService) Submit(ctx context.Context, sid string, rating int, comment string) error {
	user, ok := s.sessions.LoadUser(sid)
	if !ok {
		return models.ErrLoginRequired
	}

	sub := &models.FeedbackSubmission{
		Username: user.Username,
		Rating:   rating,
		Comment:  comment,
	}

	v := validate.Struct(sub)
	if !v.Validate() {
		return &models.ValidationError{Reason: v.Errors.One()}
	}

	return s.client.SubmitFeedback(ctx, sub)
}
