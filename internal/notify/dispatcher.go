// Package notify dispatches account notifications in the background.
//
// The dispatcher subscribes to account events and fans them out to a small
// worker pool that calls the mail sender. Delivery is fire-and-forget:
// failures are logged, never surfaced to the HTTP caller.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/itomysh95/task-manager-project/internal/events"
)

// MailSender abstracts the outbound mail transport.
type MailSender interface {
	Send(ctx context.Context, toEmail, subject, text string) error
}

// DispatcherConfig holds configuration for the notification dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many concurrent workers deliver mail.
	// If zero or negative, defaults to 2.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory event queue.
	// If zero or negative, defaults to 64.
	QueueSize int

	// SendTimeout bounds a single delivery attempt. If zero, defaults to 15s.
	SendTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		QueueSize:   64,
		SendTimeout: 15 * time.Second,
	}
}

// Dispatcher consumes account events and sends the matching notification
// mail on a bounded worker pool.
type Dispatcher struct {
	sender   MailSender
	eventCh  chan *events.AccountEvent
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	config   DispatcherConfig
	logger   *slog.Logger
	stopOnce sync.Once
}

// Ensure Dispatcher can be registered on the event emitter.
var _ events.EventHandler = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher delivering through the given sender.
func NewDispatcher(sender MailSender, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 2
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 64
	}
	if config.SendTimeout <= 0 {
		config.SendTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		sender:  sender,
		eventCh: make(chan *events.AccountEvent, config.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
		config:  config,
		logger:  logger.With("component", "notify_dispatcher"),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	d.logger.Info("notification dispatcher started",
		"worker_count", d.config.WorkerCount,
		"queue_size", d.config.QueueSize)
}

// Stop drains the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.eventCh)
		d.wg.Wait()
		d.cancel()
		d.logger.Info("notification dispatcher stopped")
	})
}

// HandleEvent implements events.EventHandler. It enqueues the event and
// returns immediately; a full queue drops the notification rather than
// blocking the request.
func (d *Dispatcher) HandleEvent(ctx context.Context, event *events.AccountEvent) error {
	select {
	case d.eventCh <- event:
		return nil
	default:
		d.logger.Warn("notification queue full, dropping event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for event := range d.eventCh {
		if err := d.deliver(event); err != nil {
			d.logger.Error("notification delivery failed",
				"error", err,
				"worker", id,
				"event_id", event.ID,
				"event_type", event.Type)
		}
	}
}

func (d *Dispatcher) deliver(event *events.AccountEvent) error {
	ctx, cancel := context.WithTimeout(d.ctx, d.config.SendTimeout)
	defer cancel()

	subject, text, err := composeMessage(event)
	if err != nil {
		return err
	}

	return d.sender.Send(ctx, event.Email, subject, text)
}

func composeMessage(event *events.AccountEvent) (subject, text string, err error) {
	switch event.Type {
	case events.EventUserRegistered:
		return "Welcome to the app",
			fmt.Sprintf("Welcome to the app, %s. Hope you enjoy it.", event.Name),
			nil
	case events.EventAccountClosed:
		return "Sorry to see you go!",
			fmt.Sprintf("Sorry to see you go, %s! Hope you return soon!", event.Name),
			nil
	default:
		return "", "", fmt.Errorf("unknown account event type %q", event.Type)
	}
}
