package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wharfside/marketplace/internal/platform/id"
	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

const (
	defaultQueueSize   = 256
	defaultSinkTimeout = 5 * time.Second
)

// Sink receives rendered notifications. The sqlite store satisfies it with
// its inbox table.
type Sink interface {
	AppendNotification(ctx context.Context, record storage.NotificationRecord) error
}

// Event is one status change to announce to one account.
type Event struct {
	AccountID    string
	Audience     Audience
	Locale       string
	ComboID      string
	Status       domain.Status
	RefundAmount int64
}

// Dispatcher renders and delivers events from a buffered queue on a worker
// goroutine. Enqueue never blocks the caller: a full queue drops the event.
type Dispatcher struct {
	sink      Sink
	queue     chan Event
	newID     func() string
	now       func() int64
	onFailure func()

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithQueueSize overrides the queue capacity.
func WithQueueSize(size int) Option {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queue = make(chan Event, size)
		}
	}
}

// WithIDFunc overrides notification id generation.
func WithIDFunc(newID func() string) Option {
	return func(d *Dispatcher) {
		if newID != nil {
			d.newID = newID
		}
	}
}

// WithNowFunc overrides the clock.
func WithNowFunc(now func() int64) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithFailureHook registers a callback invoked on every dropped or failed
// delivery, used to feed the failure counter.
func WithFailureHook(hook func()) Option {
	return func(d *Dispatcher) {
		if hook != nil {
			d.onFailure = hook
		}
	}
}

// NewDispatcher creates a stopped dispatcher; call Start to begin delivery.
func NewDispatcher(sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sink:      sink,
		queue:     make(chan Event, defaultQueueSize),
		newID:     id.NewID,
		now:       func() int64 { return time.Now().UTC().UnixMilli() },
		onFailure: func() {},
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the delivery worker. Safe to call once.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		go d.run()
	})
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

// Enqueue hands one event to the worker without blocking. Dropped events
// are counted and logged.
func (d *Dispatcher) Enqueue(event Event) {
	defer func() {
		// Close may race a late Enqueue; a dropped event is the
		// documented outcome either way.
		if recover() != nil {
			d.onFailure()
		}
	}()
	select {
	case d.queue <- event:
	default:
		log.Printf("order notify: queue full, dropping %s event for account %s",
			event.Status, event.AccountID)
		d.onFailure()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event Event) {
	printer := printerFor(event.Locale)
	output := Render(printer, event.Audience, event.Status, event.RefundAmount)

	ctx, cancel := context.WithTimeout(context.Background(), defaultSinkTimeout)
	defer cancel()
	err := d.sink.AppendNotification(ctx, storage.NotificationRecord{
		ID:           d.newID(),
		AccountID:    event.AccountID,
		ComboID:      event.ComboID,
		StatusCode:   string(event.Status),
		Title:        output.Title,
		Body:         output.Body,
		RefundAmount: event.RefundAmount,
		CreatedAt:    d.now(),
	})
	if err != nil {
		log.Printf("order notify: deliver %s to account %s: %v",
			event.Status, event.AccountID, err)
		d.onFailure()
	}
}

func printerFor(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
