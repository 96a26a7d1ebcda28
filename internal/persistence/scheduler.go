package persistence

import (
	"potatoguard/internal/persistence/interfaces"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"
	"potatoguard/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.SessionServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Session.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Session.SnapshotPath)
		s.metrics.ObservePersistenceDuration(time.Since(start))
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting sessions: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted sessions to file %s", s.config.Session.SnapshotPath)
	})

	s.cron.AddFunc(gron.Every(s.config.Session.TTL), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.service.SweepIdle(s.config.Session.TTL)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Session.SnapshotPath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting sessions to file...")
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Session.SnapshotPath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting sessions: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.SessionServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
