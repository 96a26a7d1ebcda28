package services

import (
	"context"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/remote"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// MaxUploadSize is the fixed ceiling for analyzed images.
const MaxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// AnalysisServiceInterface drives one analysis attempt: validate the upload,
// submit it to the backend, merge the response with the local preview and
// stash the result for the results route.
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, sid string, upload *models.UploadedImage) (*models.AnalysisResult, error)
}

type AnalysisService struct {
	client   remote.ApiClientInterface
	sessions SessionServiceInterface
	logger   providers.Logger
	inflight sync.Map // sid -> *atomic.Bool
}

func NewAnalysisService(client remote.ApiClientInterface, sessions SessionServiceInterface, logger providers.Logger) AnalysisServiceInterface {
	return &AnalysisService{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// ValidateUpload rejects bad uploads before anything touches the network.
func ValidateUpload(upload *models.UploadedImage) error {
	if upload == nil || len(upload.Data) == 0 {
		return &models.ValidationError{Reason: "Please select an image to detect disease."}
	}
	if !allowedImageTypes[upload.ContentType] {
		return &models.ValidationError{Reason: "Please upload a PNG, JPG, or JPEG image."}
	}
	if len(upload.Data) > MaxUploadSize {
		return &models.ValidationError{Reason: "Please upload an image smaller than 10MB."}
	}
	return nil
}

func (s *AnalysisService) flag(sid string) *atomic.Bool {
	v, _ := s.inflight.LoadOrStore(sid, atomic.NewBool(false))
	return v.(*atomic.Bool)
}

func (s *AnalysisService) Analyze(ctx context.Context, sid string, upload *models.UploadedImage) (*models.AnalysisResult, error) {
	if err := ValidateUpload(upload); err != nil {
		return nil, err
	}

	user, ok := s.sessions.LoadUser(sid)
	if !ok {
		return nil, models.ErrLoginRequired
	}

	// One submission per session at a time. The winner removes its map
	// entry when done instead of resetting the flag, so swept sessions
	// leave nothing behind; a loser holding the stale flag can never
	// acquire it because it stays true until deleted.
	flag := s.flag(sid)
	if !flag.CompareAndSwap(false, true) {
		return nil, models.ErrSubmissionInFlight
	}
	defer s.inflight.Delete(sid)

	token := uuid.NewString()
	if err := s.sessions.StashPreview(token, upload); err != nil {
		return nil, err
	}

	payload, err := s.client.Analyze(ctx, upload, user.Username)
	if err != nil {
		return nil, err
	}

	// The session may have logged out or switched identity while the
	// request was in flight; a late response must not be applied to it.
	current, ok := s.sessions.LoadUser(sid)
	if !ok || current.Username != user.Username {
		s.logger.Warnf(providers.TypeApp, "Discarding analysis response for stale session of %s", user.Username)
		return nil, models.ErrLoginRequired
	}

	result := &models.AnalysisResult{
		Image:  "/preview?t=" + token,
		Result: *payload,
	}
	if err := s.sessions.StashResult(sid, result); err != nil {
		return nil, err
	}

	s.logger.Infof(providers.TypePost, "Analysis for %s: %d detection(s)", user.Username, len(payload.Detections))
	return result, nil
}
