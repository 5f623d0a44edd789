package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/pkg/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes ticket changes to a fixed set of workers using consistent
// hashing on the ticket id, guaranteeing per-ticket change ordering.
type Dispatcher struct {
	workers []chan domain.TicketChange
	service ports.ChangeService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ChangeService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.TicketChange, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TicketChange, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a change to the worker responsible for its ticket. It never
// blocks: when the shard is full, or its worker has stopped, the change is
// dropped, counted and logged.
func (d *Dispatcher) Enqueue(change domain.TicketChange) {
	idx := d.shardIndex(change.TicketID)
	select {
	case d.workers[idx] <- change:
	default:
		metrics.ChangesErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("ticket", change.TicketID).
			Str("kind", string(change.Kind)).
			Int("worker_id", idx).
			Msg("change queue full, dropping change")
	}
	metrics.ChangesQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a ticket id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ticketID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ticketID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TicketChange) {
	depth := metrics.ChangesQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.service.Process(ctx, change); err != nil {
				d.log.Error().Err(err).
					Str("ticket", change.TicketID).
					Str("kind", string(change.Kind)).
					Int("worker_id", id).
					Msg("change processing failed")
			}
		}
	}
}
