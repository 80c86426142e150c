// Package scheduler keeps the profile cache warm with a cron-driven
// background refresh. Without a schedule configured, the loader's TTL (or
// fetch-per-request, when caching is off) is the only refresh mechanism.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/interfaces"
)

// refreshTimeout bounds one background fetch; a refresh overrunning it is
// dropped and retried on the next tick.
const refreshTimeout = 30 * time.Second

// Service runs scheduled profile refreshes.
type Service struct {
	profileService interfaces.ProfileService
	schedule       string
	cron           *cron.Cron
	logger         arbor.ILogger
}

// NewService creates a scheduler for the given cron schedule. An empty
// schedule disables background refresh.
func NewService(profileService interfaces.ProfileService, schedule string, logger arbor.ILogger) *Service {
	return &Service{
		profileService: profileService,
		schedule:       schedule,
		cron:           cron.New(),
		logger:         logger,
	}
}

// Start registers the refresh job and starts the cron runner.
func (s *Service) Start() error {
	if s.schedule == "" {
		s.logger.Debug().Msg("No profile refresh schedule configured, skipping scheduler")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.refresh)
	if err != nil {
		return fmt.Errorf("invalid profile refresh schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.schedule).
		Msg("Profile refresh scheduler started")
	return nil
}

// Stop halts the cron runner and waits for a running refresh to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Service) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.profileService.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled profile refresh failed")
	}
}
