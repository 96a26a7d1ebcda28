package services

import (
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	resultKeyPrefix  = "result:"
	historyKeyPrefix = "history:"
	previewKeyPrefix = "preview:"
)

// SessionServiceInterface is the session store: a logged-in identity per
// browser session plus the transient one-shot "current result" slot that
// must survive a page navigation.
type SessionServiceInterface interface {
	SaveUser(sid string, user *models.User)
	LoadUser(sid string) (*models.User, bool)
	ClearUser(sid string)

	StashResult(sid string, result *models.AnalysisResult) error
	TakeResult(sid string) (*models.AnalysisResult, error)

	StashHistory(sid string, items []models.HistoryItem) error
	LoadHistory(sid string) ([]models.HistoryItem, bool)

	StashPreview(token string, upload *models.UploadedImage) error
	LoadPreview(token string) (*models.UploadedImage, bool)

	ActiveSessions() int
	Snapshot() *models.SessionSnapshot
	Restore(snap *models.SessionSnapshot)
	SweepIdle(maxIdle time.Duration) int
}

type sessionRecord struct {
	User     *models.User `json:"user"`
	LastSeen time.Time    `json:"last_seen"`
}

type SessionService struct {
	mu      sync.RWMutex
	users   map[string]*sessionRecord
	cache   providers.CacheProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewSessionService(cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SessionServiceInterface {
	return &SessionService{
		users:   make(map[string]*sessionRecord),
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *SessionService) SaveUser(sid string, user *models.User) {
	s.mu.Lock()
	s.users[sid] = &sessionRecord{User: user, LastSeen: time.Now()}
	count := len(s.users)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
}

func (s *SessionService) LoadUser(sid string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[sid]
	if !ok {
		return nil, false
	}
	rec.LastSeen = time.Now()
	return rec.User, true
}

func (s *SessionService) ClearUser(sid string) {
	s.mu.Lock()
	delete(s.users, sid)
	count := len(s.users)
	s.mu.Unlock()

	s.cache.Del(resultKeyPrefix + sid)
	s.cache.Del(historyKeyPrefix + sid)
	s.metrics.SetActiveSessions(count)
}

func (s *SessionService) StashResult(sid string, result *models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to encode result for stash: %s", err)
		return err
	}
	if err := s.cache.Set(resultKeyPrefix+sid, data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to store result for session: %s", err)
		return err
	}
	return nil
}

// TakeResult is one-shot: the key is removed before the decoded value is
// returned, so a re-entrant read from the same navigation cannot fire twice.
// A malformed stored blob is treated as absent, never as a crash.
func (s *SessionService) TakeResult(sid string) (*models.AnalysisResult, error) {
	key := resultKeyPrefix + sid
	data, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	s.cache.Del(key)

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warnf(providers.TypeApp, "Discarding malformed stored result: %s", err)
		return nil, nil
	}
	return &result, nil
}

func (s *SessionService) StashHistory(sid string, items []models.HistoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to encode history for stash: %s", err)
		return err
	}
	if err := s.cache.Set(historyKeyPrefix+sid, data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to store history for session: %s", err)
		return err
	}
	return nil
}

func (s *SessionService) LoadHistory(sid string) ([]models.HistoryItem, bool) {
	data, ok := s.cache.Get(historyKeyPrefix + sid)
	if !ok {
		return nil, false
	}
	var items []models.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warnf(providers.TypeApp, "Discarding malformed stored history: %s", err)
		return nil, false
	}
	return items, true
}

func (s *SessionService) StashPreview(token string, upload *models.UploadedImage) error {
	data, err := json.Marshal(upload)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to encode preview for stash: %s", err)
		return err
	}
	if err := s.cache.Set(previewKeyPrefix+token, data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to store preview blob: %s", err)
		return err
	}
	return nil
}

func (s *SessionService) LoadPreview(token string) (*models.UploadedImage, bool) {
	data, ok := s.cache.Get(previewKeyPrefix + token)
	if !ok {
		return nil, false
	}
	var upload models.UploadedImage
	if err := json.Unmarshal(data, &upload); err != nil {
		return nil, false
	}
	return &upload, true
}

func (s *SessionService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *SessionService) Snapshot() *models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &models.SessionSnapshot{
		Version:  models.SnapshotVersion,
		Sessions: make(map[string]*models.PersistedSession, len(s.users)),
	}
	for sid, rec := range s.users {
		snap.Sessions[sid] = &models.PersistedSession{
			User:     *rec.User,
			LastSeen: rec.LastSeen,
		}
	}
	return snap
}

func (s *SessionService) Restore(snap *models.SessionSnapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	for sid, ps := range snap.Sessions {
		user := ps.User
		s.users[sid] = &sessionRecord{User: &user, LastSeen: ps.LastSeen}
	}
	count := len(s.users)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	s.logger.Infof(providers.TypeApp, "Restored %d session(s) from snapshot", count)
}

// SweepIdle drops sessions whose identity has not been touched within
// maxIdle and returns how many were removed.
func (s *SessionService) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	removed := 0
	for sid, rec := range s.users {
		if rec.LastSeen.Before(cutoff) {
			delete(s.users, sid)
			removed++
		}
	}
	count := len(s.users)
	s.mu.Unlock()

	if removed > 0 {
		s.metrics.SetActiveSessions(count)
		s.logger.Infof(providers.TypeApp, "Swept %d idle session(s)", removed)
	}
	return removed
}
