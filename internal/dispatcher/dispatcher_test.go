package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func (l *testLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	require.NoError(t, err)

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register("classify", func(e Event) (any, error) {
		got = e
		return "result", nil
	})

	result, err := d.Dispatch(Event{Command: "classify", Args: []string{"{}"}, Line: 3})

	require.NoError(t, err)
	assert.Equal(t, "result", result)
	assert.Equal(t, 3, got.Line)
	assert.Equal(t, []string{"{}"}, got.Args)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: "unknown"})

	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatcher_BufferedHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var processed atomic.Int32
	d.Register("record", func(e Event) (any, error) {
		processed.Add(1)
		return nil, nil
	}, Buffered(100))

	for i := 0; i < 3; i++ {
		result, err := d.Dispatch(Event{Command: "record"})
		require.NoError(t, err)
		assert.Equal(t, "queued", result)
	}

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(3), processed.Load())
}

func TestDispatcher_BufferedDropsWhenFull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	block := make(chan struct{})
	started := make(chan struct{}, 1)
	d.Register("record", func(e Event) (any, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil, nil
	}, Buffered(2))

	d.Dispatch(Event{Command: "record"}) // being processed
	<-started
	d.Dispatch(Event{Command: "record"}) // queued
	d.Dispatch(Event{Command: "record"}) // queued

	_, err := d.Dispatch(Event{Command: "record"})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
}

func TestDispatcher_BufferedBlocking(t *testing.T) {
	d, _ := newTestDispatcher(t)

	block := make(chan struct{})
	started := make(chan struct{}, 1)
	d.Register("record", func(e Event) (any, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil, nil
	}, Buffered(1), Blocking())

	d.Dispatch(Event{Command: "record"})
	<-started
	d.Dispatch(Event{Command: "record"})

	done := make(chan struct{})
	go func() {
		d.Dispatch(Event{Command: "record"})
		close(done)
	}()

	select {
	case <-done:
		t.Error("dispatch should have blocked")
	case <-time.After(50 * time.Millisecond):
	}

	close(block)
	<-done
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("classify", func(e Event) (any, error) {
		return "ok", nil
	}, Logged())

	_, err := d.Dispatch(Event{Command: "classify", Args: []string{"a", "b"}})
	require.NoError(t, err)

	assert.Len(t, logger.snapshot(), 2)
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("place", func(e Event) (any, error) {
		return nil, errors.New("test error")
	}, Logged())

	_, err := d.Dispatch(Event{Command: "place"})
	require.Error(t, err)

	msgs := logger.snapshot()
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[len(msgs)-1], "ERROR: event failed")
}

func TestDispatcher_QueuedErrorIsLogged(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("record", func(e Event) (any, error) {
		return nil, errors.New("disk full")
	}, Buffered(1))

	_, err := d.Dispatch(Event{Command: "record", Line: 9})
	require.NoError(t, err)
	require.NoError(t, d.Close(context.Background()))

	msgs := logger.snapshot()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "queued event failed")
}

func TestDispatcher_HasHandlerAndCommands(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("validate", func(e Event) (any, error) { return nil, nil })
	d.Register("classify", func(e Event) (any, error) { return nil, nil })

	assert.True(t, d.HasHandler("validate"))
	assert.False(t, d.HasHandler("place"))
	assert.Equal(t, []string{"classify", "validate"}, d.Commands())
}

func TestDispatcher_CombinedOptions(t *testing.T) {
	d, logger := newTestDispatcher(t)

	var processed atomic.Int32
	d.Register("record", func(e Event) (any, error) {
		processed.Add(1)
		return "done", nil
	}, Buffered(100), Logged())

	result, err := d.Dispatch(Event{Command: "record"})
	require.NoError(t, err)
	assert.Equal(t, "queued", result)

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(1), processed.Load())
	assert.Len(t, logger.snapshot(), 2)
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.Register("record", func(e Event) (any, error) { return nil, nil }, Buffered(1))

	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()), "close is idempotent")

	_, err := d.Dispatch(Event{Command: "record"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDispatcher_CloseTimeout(t *testing.T) {
	d, _ := newTestDispatcher(t)

	block := make(chan struct{})
	defer close(block)
	d.Register("record", func(e Event) (any, error) {
		<-block
		return nil, nil
	}, Buffered(1))
	d.Dispatch(Event{Command: "record"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
