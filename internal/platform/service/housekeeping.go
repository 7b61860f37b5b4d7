package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyhall/studyhall/internal/platform/store"
)

// HousekeepingService periodically sweeps expired and revoked refresh
// tokens out of the database.
type HousekeepingService struct {
	Store    store.Store
	Interval time.Duration
	Logger   *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

const defaultHousekeepingInterval = time.Hour

// Start launches the background sweep loop. One sweep runs immediately.
func (s *HousekeepingService) Start() {
	if s.Interval <= 0 {
		s.Interval = defaultHousekeepingInterval
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go func() {
		defer close(s.doneCh)

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		s.sweep()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop signals the loop and waits for the in-flight sweep to finish.
func (s *HousekeepingService) Stop() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	<-s.doneCh
}

func (s *HousekeepingService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx); err != nil {
		s.Logger.Error("refresh token sweep failed", "err", err)
		return
	}
	s.Logger.Debug("refresh token sweep complete")
}
