package ws

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu       sync.Mutex
	written  [][]byte
	pings    int
	closed   bool
	writeErr error
}

func (f *fakeTransport) WriteMessage(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, data)
	return nil
}

func (f *fakeTransport) Ping() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return nil
}

func (f *fakeTransport) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeTransport) snapshot() (int, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written), f.pings, f.closed
}

func TestRuntimeClient_WriteLoopDeliversInOrder(t *testing.T) {
	req := require.New(t)

	// Given
	tr := &fakeTransport{}
	c := NewClient(context.Background(), tr, "u1", 8)
	go c.WriteLoop(time.Hour)

	// When
	req.NoError(c.Send(context.Background(), []byte("1")))
	req.NoError(c.Send(context.Background(), []byte("2")))

	// Then
	req.Eventually(func() bool { n, _, _ := tr.snapshot(); return n == 2 }, time.Second, 5*time.Millisecond)
	tr.mu.Lock()
	req.Equal([][]byte{[]byte("1"), []byte("2")}, tr.written)
	tr.mu.Unlock()
	c.Close()
}

func TestRuntimeClient_SlowConsumerIsClosed(t *testing.T) {
	req := require.New(t)

	// Given a client whose writer never drains
	tr := &fakeTransport{}
	c := NewClient(context.Background(), tr, "u1", 1)

	// When
	req.NoError(c.Send(context.Background(), []byte("1")))
	err := c.Send(context.Background(), []byte("2"))

	// Then
	req.ErrorIs(err, ErrSlowConsumer)
	req.Eventually(func() bool { _, _, closed := tr.snapshot(); return closed }, time.Second, 5*time.Millisecond)
	req.ErrorIs(c.Send(context.Background(), []byte("3")), ErrClientClosed)
}

func TestRuntimeClient_WriteErrorClosesClient(t *testing.T) {
	req := require.New(t)

	// Given
	tr := &fakeTransport{writeErr: errors.New("broken pipe")}
	c := NewClient(context.Background(), tr, "u1", 4)
	done := make(chan struct{})
	go func() {
		c.WriteLoop(time.Hour)
		close(done)
	}()

	// When
	req.NoError(c.Send(context.Background(), []byte("1")))

	// Then
	req.Eventually(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	_, _, closed := tr.snapshot()
	req.True(closed)
}

func TestRuntimeClient_PingsOnTicker(t *testing.T) {
	req := require.New(t)

	// Given
	tr := &fakeTransport{}
	c := NewClient(context.Background(), tr, "u1", 1)
	go c.WriteLoop(5 * time.Millisecond)
	defer c.Close()

	// Then
	req.Eventually(func() bool { _, pings, _ := tr.snapshot(); return pings >= 2 }, time.Second, 5*time.Millisecond)
}

func TestRuntimeClient_ParentCancelStopsClient(t *testing.T) {
	req := require.New(t)

	// Given
	parent, cancel := context.WithCancel(context.Background())
	c := NewClient(parent, &fakeTransport{}, "u1", 1)

	// When
	cancel()

	// Then
	<-c.Done()
	req.ErrorIs(c.Send(context.Background(), []byte("x")), ErrClientClosed)
	req.NotEmpty(c.ID())
	req.Equal("u1", c.UserID())
}
