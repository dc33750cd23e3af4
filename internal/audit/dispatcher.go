package audit

import (
	"sync"

	"go.uber.org/zap"
)

const queueSize = 100

type Event struct {
	BusinessID string
	UserID     string
	Action     string
	Entity     string
	EntityID   string
	Metadata   any
}

// Dispatcher writes audit events on a background worker. Events are dropped
// when the queue is full so that request handling never blocks on auditing.
type Dispatcher struct {
	writer Writer
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(writer Writer, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    log,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.writer.Write(ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("business_id", ev.BusinessID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch is safe to call on a nil Dispatcher. Events sent after Close are
// dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain. Calling it
// more than once is a no-op.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
