package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/shared"
)

var ErrDispatcherStopped = errs.New("notification dispatcher stopped")

// Handler delivers one job. It is called from worker goroutines.
type Handler interface {
	Deliver(ctx context.Context, job shared.NotificationJob) error
}

// Dispatcher is a bounded in-memory queue drained by a fixed pool of workers.
// Jobs still queued at shutdown are drained until the stop context expires.
type Dispatcher struct {
	logger      *slog.Logger
	queue       chan shared.NotificationJob
	workers     int
	jobTimeout  time.Duration
	handler     Handler
	mu          sync.RWMutex
	stopped     bool
	wg          sync.WaitGroup
	handlerOnce sync.Once
}

func NewDispatcher(logger *slog.Logger, cfg config.NotifyConfig) *Dispatcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	size := cfg.QueueSize
	if size < 1 {
		size = 1
	}
	return &Dispatcher{
		logger:     logger,
		queue:      make(chan shared.NotificationJob, size),
		workers:    workers,
		jobTimeout: 30 * time.Second,
	}
}

// SetHandler wires the delivery handler. Only the first call takes effect.
func (d *Dispatcher) SetHandler(h Handler) {
	d.handlerOnce.Do(func() { d.handler = h })
}

// Dispatch enqueues job without blocking.
func (d *Dispatcher) Dispatch(_ context.Context, job shared.NotificationJob) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- job:
		return nil
	default:
		return shared.ErrQueueFull
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(i)
	}
	d.logger.Info("notification dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Stop closes the queue and waits for the workers to drain it or for ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher stop timed out", "pending", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) run(worker int) {
	defer d.wg.Done()
	for job := range d.queue {
		d.deliver(worker, job)
	}
}

func (d *Dispatcher) deliver(worker int, job shared.NotificationJob) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notification handler panicked", "worker", worker, "reservation_id", job.ReservationID, "panic", r)
		}
	}()

	if d.handler == nil {
		d.logger.Warn("notification dropped, no handler", "reservation_id", job.ReservationID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
	defer cancel()

	if err := d.handler.Deliver(ctx, job); err != nil {
		d.logger.Error("notification delivery failed",
			"worker", worker,
			"reservation_id", job.ReservationID,
			"type", job.Type,
			"error", err.Error())
	}
}
