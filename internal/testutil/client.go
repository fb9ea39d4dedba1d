// Package testutil holds in-memory doubles shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrClosed = errors.New("fake client closed")

// WireFrame is a server frame as a client decodes it.
type WireFrame struct {
	ID     string          `json:"id"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
	SentAt string          `json:"sent_at"`
}

// Client records every frame sent to it.
type Client struct {
	id     string
	userID string

	mu      sync.Mutex
	frames  [][]byte
	closed  bool
	SendErr error
}

func NewClient(userID string) *Client {
	return &Client{id: uuid.NewString(), userID: userID}
}

func (c *Client) ID() string     { return c.id }
func (c *Client) UserID() string { return c.userID }

func (c *Client) Send(_ context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.SendErr != nil {
		return c.SendErr
	}
	c.frames = append(c.frames, data)
	return nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Frames decodes everything received so far.
func (c *Client) Frames() []WireFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]WireFrame, 0, len(c.frames))
	for _, raw := range c.frames {
		var f WireFrame
		if err := json.Unmarshal(raw, &f); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// Events returns the decoded frames of the given event name.
func (c *Client) Events(event string) []WireFrame {
	var out []WireFrame
	for _, f := range c.Frames() {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out
}

// Reset drops recorded frames.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}
