package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher fans auth audit events out to a fixed set of workers, sharded by
// username so events for one account keep their order. Workers write the
// event to the structured audit log off the request path.
type Dispatcher struct {
	workers []chan ports.AuditEvent
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEvent, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an audit event on the worker responsible for its username.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(event ports.AuditEvent) {
	d.workers[d.shardIndex(event.Username)] <- event
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.log.Info().
				Str("kind", event.Kind).
				Str("username", event.Username).
				Bool("success", event.Success).
				Time("at", event.At).
				Int("worker_id", id).
				Msg("auth audit event")
		}
	}
}
