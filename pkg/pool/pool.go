package pool

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Job is a unit of work scheduled on the pool. Execute runs on a worker
// goroutine; exactly one of OnFailure or OnSuccess is called afterwards.
type Job interface {
	Execute() error
	OnFailure(error)
	OnSuccess()
}

type WorkerPool struct {
	queue      JobQueue
	minWorkers uint
	numWorkers uint // guarded by mu, cant be negative
	mu         sync.Mutex
	startOnce  sync.Once
	stopOnce   sync.Once
	quit       chan struct{}
	workers    *sync.WaitGroup
	closed     *atomic.Bool
}

// NewWorkerPool returns a stopped pool. minWorkers workers are spun up on
// Start; bufferSize is the number of jobs Put accepts without blocking.
func NewWorkerPool(minWorkers, bufferSize uint) *WorkerPool {
	closed := &atomic.Bool{}
	closed.Store(true)

	return &WorkerPool{
		queue:      make(chan Job, bufferSize),
		minWorkers: minWorkers,
		quit:       make(chan struct{}),
		workers:    &sync.WaitGroup{},
		closed:     closed,
	}
}

func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		wp.closed.Store(false)

		wg := sync.WaitGroup{}
		for range wp.minWorkers {
			wg.Go(wp.spawnWorker)
		}
		wg.Wait() // all workers are up before Start returns
	})
}

// Stop rejects further Puts and waits for in-flight jobs to finish.
// Jobs still buffered in the queue are dropped.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		wp.closed.Store(true)
		close(wp.quit)
		wp.workers.Wait()
		close(wp.queue)
	})
}

func (wp *WorkerPool) Put(job Job) error {
	if wp.closed.Load() {
		return ErrPutOnClosedPool
	}

	if wp.queue.Full() {
		wp.spawnWorker() // scale up instead of blocking the producer
	}
	wp.queue <- job

	return nil
}

// ScaleTo raises the worker floor. It never stops running workers: excess
// workers above the floor retire themselves once idle for IDLESTOP.
func (wp *WorkerPool) ScaleTo(target uint) {
	wp.mu.Lock()
	wp.minWorkers = target
	var missing uint
	if wp.numWorkers < target {
		missing = target - wp.numWorkers
	}
	wp.mu.Unlock()

	for range missing {
		wp.spawnWorker()
	}
}

func (wp *WorkerPool) NumWorkers() uint {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.numWorkers
}

func (wp *WorkerPool) spawnWorker() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	wp.numWorkers++
	wp.workers.Add(1)
	go wp.worker(uuid.New().ID())
}

func (wp *WorkerPool) retireWorker() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.numWorkers--
}

func (wp *WorkerPool) worker(id uint32) {
	defer wp.workers.Done()

	for {
		select {
		case job, ok := <-wp.queue:
			if !ok {
				return
			}

			if err := job.Execute(); err != nil {
				job.OnFailure(err)
			} else {
				job.OnSuccess()
			}

		case <-wp.quit:
			wp.retireWorker()
			return

		case <-time.After(IDLESTOP):
			wp.mu.Lock()
			if wp.numWorkers > wp.minWorkers {
				wp.numWorkers--
				wp.mu.Unlock()
				slog.Debug("idle worker retired", slog.Any("worker_id", id))
				return
			}
			wp.mu.Unlock()
		}
	}
}
