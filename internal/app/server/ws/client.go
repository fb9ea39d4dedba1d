package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientClosed = errors.New("client closed")
	ErrSlowConsumer = errors.New("client send buffer full")
)

// transport is the write side of a websocket connection.
type transport interface {
	WriteMessage(data []byte) error
	Ping() error
	Close()
}

// RuntimeClient owns the outbound queue of one connection. A client whose
// buffer overflows is closed; it recovers by reconnecting.
type RuntimeClient struct {
	ctx    context.Context
	cancel context.CancelFunc
	ws     transport
	id     string
	userID string
	out    chan []byte
	once   sync.Once
}

func NewClient(parent context.Context, ws transport, userID string, buffer int) *RuntimeClient {
	ctx, cancel := context.WithCancel(parent)
	return &RuntimeClient{
		ctx:    ctx,
		cancel: cancel,
		ws:     ws,
		id:     uuid.NewString(),
		userID: userID,
		out:    make(chan []byte, buffer),
	}
}

func (c *RuntimeClient) ID() string     { return c.id }
func (c *RuntimeClient) UserID() string { return c.userID }

func (c *RuntimeClient) Done() <-chan struct{} { return c.ctx.Done() }

// Send queues data without blocking.
func (c *RuntimeClient) Send(_ context.Context, data []byte) error {
	select {
	case <-c.ctx.Done():
		return ErrClientClosed
	default:
	}
	select {
	case c.out <- data:
		return nil
	case <-c.ctx.Done():
		return ErrClientClosed
	default:
		go c.Close()
		return ErrSlowConsumer
	}
}

func (c *RuntimeClient) Close() {
	c.once.Do(func() {
		c.cancel()
		c.ws.Close()
	})
}

// WriteLoop drains the queue to the socket and pings the peer every
// pingPeriod. It returns when the client is closed or a write fails.
func (c *RuntimeClient) WriteLoop(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-c.ctx.Done():
			return
		case data := <-c.out:
			if err := c.ws.WriteMessage(data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.ws.Ping(); err != nil {
				return
			}
		}
	}
}
