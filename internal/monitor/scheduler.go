package monitor

import (
	"time"

	"github.com/browsekit/navigator/internal/utils/timesutil"
)

// wrapper for a probe interval's ticker and quit
type scheduler struct {
	interval timesutil.Duration
	ticker   *time.Ticker
	quit     chan struct{}
}

func newScheduler(duration timesutil.Duration) *scheduler {
	return &scheduler{
		interval: duration,
		ticker:   time.NewTicker(time.Duration(duration)),
		quit:     make(chan struct{}),
	}
}

func (s *scheduler) Stop() {
	s.ticker.Stop()
}
