// Package monitor probes the addresses behind override entries so the
// shell can tell a stale entry from a working one.
package monitor

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/browsekit/navigator/internal/checks"
	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/utils"
	"github.com/browsekit/navigator/internal/utils/timesutil"
	"github.com/browsekit/navigator/pkg/metrics"
	"github.com/browsekit/navigator/pkg/pool"
)

// Monitor schedules reachability probes for override targets. Targets on
// the same interval share one scheduler, probes run on the worker pool.
type Monitor struct {
	scheduledTargets map[timesutil.Duration][]*Target
	schedulers       map[timesutil.Duration]*scheduler
	log              *zap.SugaredLogger
	mutex            sync.RWMutex
	stop             sync.Once
	pool             *pool.WorkerPool
	wg               sync.WaitGroup
	checkType        string
	luaScript        string
	dryrun           bool
	reachableCount   int
}

func NewMonitor(logger *zap.Logger, opts ...monitorOption) *Monitor {
	cfg := monitorConfig{
		MinRunningWorkers:     10,
		NonBlockingBufferSize: 20,
		CheckType:             checks.TCP_FULL,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.DryRun {
		logger.Warn("dry-run enabled")
	}

	return &Monitor{
		scheduledTargets: make(map[timesutil.Duration][]*Target),
		schedulers:       make(map[timesutil.Duration]*scheduler),
		log:              logger.Sugar(),
		pool:             pool.NewWorkerPool(cfg.MinRunningWorkers, cfg.NonBlockingBufferSize),
		checkType:        strings.ToUpper(cfg.CheckType),
		luaScript:        cfg.LuaScript,
		dryrun:           cfg.DryRun,
	}
}

func (m *Monitor) Start() {
	m.pool.Start()
}

func (m *Monitor) Stop() {
	m.pool.Stop()
	m.stop.Do(func() {
		m.mutex.Lock()
		for _, scheduler := range m.schedulers {
			close(scheduler.quit)
		}
		m.mutex.Unlock()
		m.wg.Wait()
		m.log.Debug("successfully closed monitor")
	})
}

// RegisterTarget starts probing the entry's address at the given interval.
// Re-registering a hostname replaces its target.
func (m *Monitor) RegisterTarget(entry model.Override, interval timesutil.Duration) (*Target, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	opt := WithCheckType(m.checkType, m.luaScript)
	if m.dryrun {
		opt = WithChecker(checks.NewDryRun())
	}

	target, err := NewTarget(entry, m.log, opt)
	if err != nil {
		return nil, err
	}

	if old, _, _ := m.findTargetUnlocked(entry.Hostname); old != nil {
		m.removeTargetUnlocked(entry.Hostname)
	}

	if _, ok := m.scheduledTargets[interval]; !ok { // first target on interval
		m.newScheduler(interval)
	}

	target.SetReachabilityChangeCallback(func(reachable bool) {
		m.onReachabilityChange(target, reachable)
	})

	m.scheduledTargets[interval] = append(m.scheduledTargets[interval], target)
	m.log.Debugf("target: %v (%v) registered", target.Hostname, target.Addr())

	return target, nil
}

// RemoveTarget stops probing a hostname.
func (m *Monitor) RemoveTarget(hostname string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.removeTargetUnlocked(hostname)
}

// SyncTargets reconciles the monitored set against the current override
// entries: new hostnames get targets, removed hostnames are dropped.
func (m *Monitor) SyncTargets(entries []model.Override, interval timesutil.Duration) {
	m.mutex.Lock()
	known := make(map[string]bool)
	for _, targets := range m.scheduledTargets {
		for _, target := range targets {
			known[target.Hostname] = true
		}
	}
	m.mutex.Unlock()

	current := make(map[string]bool, len(entries))
	for _, entry := range entries {
		current[entry.Hostname] = true
		if known[entry.Hostname] {
			continue
		}
		if _, err := m.RegisterTarget(entry, interval); err != nil {
			m.log.Errorf("unable to register target for %s: %s", entry.Hostname, err.Error())
		}
	}

	for hostname := range known {
		if !current[hostname] {
			if err := m.RemoveTarget(hostname); err != nil && !errors.Is(err, ErrTargetNotFound) {
				m.log.Errorf("unable to remove target for %s: %s", hostname, err.Error())
			}
		}
	}
}

// Reachable reports the last probed state for a hostname.
func (m *Monitor) Reachable(hostname string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	target, _, _ := m.findTargetUnlocked(hostname)
	if target == nil {
		return false, ErrTargetNotFound
	}

	return target.IsReachable(), nil
}

func (m *Monitor) onReachabilityChange(target *Target, reachable bool) {
	m.log.Infof("target %v (%v) changed reachability (reachable: %v)", target.Hostname, target.Addr(), reachable)

	m.mutex.Lock()
	if reachable {
		m.reachableCount++
	} else if m.reachableCount > 0 {
		m.reachableCount--
	}
	metrics.TargetsReachable.Set(float64(m.reachableCount))
	m.mutex.Unlock()
}

func (m *Monitor) schedulerLoop(scheduler *scheduler) {
	m.wg.Go(func() {
		defer scheduler.Stop()
		for {
			select {
			case <-scheduler.ticker.C:
				m.mutex.RLock()
				targets := make([]*Target, len(m.scheduledTargets[scheduler.interval]))
				copy(targets, m.scheduledTargets[scheduler.interval]) // copy to not hold the lock while iterating targets
				m.mutex.RUnlock()

				for i := range targets {
					m.log.Debugf("probing target: %v", targets[i].Hostname)
					if err := m.pool.Put(targets[i]); errors.Is(err, pool.ErrPutOnClosedPool) {
						m.log.Errorf("failed to schedule probe, pool is closed")
					}
				}

			case <-scheduler.quit: // stops a specific scheduler
				m.log.Debugf("scheduler on interval: %v closed", scheduler.interval.String())
				return
			}
		}
	})
}

// assumes m.mutex is held by the caller
func (m *Monitor) findTargetUnlocked(hostname string) (*Target, timesutil.Duration, int) {
	for interval, targets := range m.scheduledTargets {
		for idx, target := range targets {
			if target.Hostname == hostname {
				return target, interval, idx
			}
		}
	}

	return nil, 0, -1
}

// assumes m.mutex is held by the caller
func (m *Monitor) removeTargetUnlocked(hostname string) error {
	target, interval, idx := m.findTargetUnlocked(hostname)
	if target == nil {
		return ErrTargetNotFound
	}

	newQueue := utils.RemoveIndexFromSlice(m.scheduledTargets[interval], idx)
	if len(newQueue) == 0 {
		m.cleanupInterval(interval)
	} else {
		m.scheduledTargets[interval] = newQueue
	}
	m.log.Debugf("target: %v removed", hostname)

	return nil
}

// creates a new scheduler, and starts its loop
// assumes m.mutex is held by the caller
func (m *Monitor) newScheduler(interval timesutil.Duration) *scheduler {
	scheduler := newScheduler(interval)
	m.schedulers[interval] = scheduler
	m.scheduledTargets[interval] = make([]*Target, 0)
	m.schedulerLoop(scheduler)
	m.log.Debugf("new scheduler on interval: %v", scheduler.interval.String())

	return scheduler
}

// assumes m.mutex is held by the caller
func (m *Monitor) cleanupInterval(interval timesutil.Duration) {
	delete(m.scheduledTargets, interval)
	if scheduler, ok := m.schedulers[interval]; ok {
		close(scheduler.quit)
		delete(m.schedulers, interval)
	}
	m.log.Debugf("deleted scheduler on interval: %v", interval.String())
}
