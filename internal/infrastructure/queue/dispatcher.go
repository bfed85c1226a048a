package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/api/metrics"
	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher persists access-denied audit events off the request path. Events
// are routed to a fixed set of workers by principal id, so one principal's
// events are written in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.AccessDeniedEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AccessDeniedEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccessDeniedEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after writing what is still buffered.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues an event without blocking. When the worker's queue is full
// the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AccessDeniedEvent) {
	idx := d.shardIndex(event.PrincipalID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Int64("principal_id", event.PrincipalID).
			Str("resource", event.Resource).
			Int64("resource_id", event.ResourceID).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a principal id deterministically to a worker index.
func (d *Dispatcher) shardIndex(principalID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(principalID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AccessDeniedEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(id, event)
		}
	}
}

// drain writes the events still buffered when the dispatcher is stopped.
func (d *Dispatcher) drain(id int, ch <-chan domain.AccessDeniedEvent) {
	for {
		select {
		case event := <-ch:
			d.write(id, event)
		default:
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

// write persists one event. Its deadline is independent of the worker's
// context, so an event taken off the queue during shutdown is still written.
func (d *Dispatcher) write(id int, event domain.AccessDeniedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := d.repo.InsertAccessDenied(ctx, &event); err != nil {
		d.log.Error().Err(err).
			Int64("principal_id", event.PrincipalID).
			Str("resource", event.Resource).
			Int64("resource_id", event.ResourceID).
			Int("worker_id", id).
			Msg("audit event persistence failed")
	}
}
