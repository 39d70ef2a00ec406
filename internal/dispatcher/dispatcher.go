package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

var (
	// ErrUnknownCommand is returned by Dispatch for commands without a handler.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")
	// ErrQueueFull is returned when a non-blocking buffered handler drops an event.
	ErrQueueFull = errors.New("dispatcher: queue full")
	// ErrClosed is returned for events dispatched after Close.
	ErrClosed = errors.New("dispatcher: closed")
)

// queuedResult is what a buffered handler answers once the event is queued.
const queuedResult = "queued"

// Event is one request line: a command and its string arguments.
type Event struct {
	Command   string
	Args      []string
	Line      int
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	bufferSize int
	blocking   bool
	logged     bool
}

// Buffered runs the handler on its own goroutine behind a queue of size events.
func Buffered(size int) Option {
	return func(c *config) { c.bufferSize = size }
}

// Blocking makes a buffered handler wait for queue space instead of dropping.
func Blocking() Option {
	return func(c *config) { c.blocking = true }
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) { c.logged = true }
}

// Dispatcher routes events to registered handlers.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger
	metrics  instruments

	mu      sync.RWMutex
	queues  map[string]chan Event
	closed  bool
	workers sync.WaitGroup
}

// New creates a Dispatcher that logs through logger and reports queue metrics
// on the global otel meter.
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		queues:   make(map[string]chan Event),
		logger:   logger,
	}

	ins, err := newInstruments(d.queueLengths)
	if err != nil {
		return nil, err
	}
	d.metrics = ins
	return d, nil
}

// Register adds a handler for the given command with optional configuration.
// Handlers must be registered before the first Dispatch.
func (d *Dispatcher) Register(command string, h HandlerFunc, opts ...Option) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logged {
		h = d.logged(command, h)
	}
	if cfg.bufferSize > 0 {
		h = d.queued(command, cfg, h)
	}
	d.handlers[command] = h
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	h, ok := d.handlers[e.Command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, e.Command)
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the command.
func (d *Dispatcher) HasHandler(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Commands returns the registered command names in lexical order.
func (d *Dispatcher) Commands() []string {
	out := make([]string, 0, len(d.handlers))
	for cmd := range d.handlers {
		out = append(out, cmd)
	}
	sort.Strings(out)
	return out
}

// Close stops accepting buffered events and waits until queued ones are
// handled or ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, q := range d.queues {
			close(q)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for queued events: %w", ctx.Err())
	}
}

func (d *Dispatcher) queueLengths() map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]int, len(d.queues))
	for cmd, q := range d.queues {
		out[cmd] = len(q)
	}
	return out
}

func (d *Dispatcher) queued(command string, cfg config, h HandlerFunc) HandlerFunc {
	q := make(chan Event, cfg.bufferSize)

	d.mu.Lock()
	d.queues[command] = q
	d.mu.Unlock()

	attrs := metric.WithAttributes(commandAttr(command))

	d.workers.Add(1)
	go func() {
		defer d.workers.Done()
		for e := range q {
			if _, err := h(e); err != nil {
				d.logger.Error("queued event failed", "command", command, "line", e.Line, "error", err)
			}
			d.metrics.processed.Add(context.Background(), 1, attrs)
		}
	}()

	return func(e Event) (any, error) {
		// Close takes the write lock before closing q.
		d.mu.RLock()
		defer d.mu.RUnlock()
		if d.closed {
			return nil, fmt.Errorf("%w: %s", ErrClosed, command)
		}

		if cfg.blocking {
			q <- e
			return queuedResult, nil
		}
		select {
		case q <- e:
			return queuedResult, nil
		default:
			d.metrics.dropped.Add(context.Background(), 1, attrs)
			return nil, fmt.Errorf("%w: %s", ErrQueueFull, command)
		}
	}
}

func (d *Dispatcher) logged(command string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling event", "command", command, "line", e.Line, "args", len(e.Args))

		result, err := h(e)
		if err != nil {
			d.logger.Error("event failed", "command", command, "line", e.Line, "duration", time.Since(start), "error", err)
			return result, err
		}
		d.logger.Debug("event complete", "command", command, "line", e.Line, "duration", time.Since(start))
		return result, nil
	}
}
