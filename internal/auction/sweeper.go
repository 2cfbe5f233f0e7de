package auction

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepInterval is how often expired searches are purged.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper periodically removes expired entries from a Cache so memory is
// reclaimed for chats that never navigate again.
type Sweeper struct {
	cron  *cron.Cron
	cache *Cache
	log   *slog.Logger
}

// NewSweeper creates a Sweeper that purges cache every interval.
func NewSweeper(cache *Cache, interval time.Duration, log *slog.Logger) (*Sweeper, error) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	s := &Sweeper{
		cron:  cron.New(),
		cache: cache,
		log:   log,
	}

	if _, err := s.cron.AddFunc("@every "+interval.String(), s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running the sweep in the background.
func (s *Sweeper) Start() {
	s.log.Info("cache sweeper started")
	s.cron.Start()
}

// Stop halts the sweeper. The returned context is done once a running sweep
// has finished.
func (s *Sweeper) Stop() context.Context {
	s.log.Info("cache sweeper stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Sweeper) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Sweeper) sweep() {
	if n := s.cache.Sweep(); n > 0 {
		s.log.Debug("swept expired searches", "removed", n)
	}
}
