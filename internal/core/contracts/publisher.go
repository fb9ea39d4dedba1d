//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=../../mocks/mock_publisher.go -package=mocks
package contracts

import (
	"context"
	"huddle/internal/core/domain"
)

// Target addresses a fan-out: a room, a set of users, or both.
type Target struct {
	Room  string
	Users []string
}

// Delivery counts what one publish reached.
type Delivery struct {
	Room   int
	Direct int
	Missed int
}

// Publisher delivers domain events to connected clients, best effort.
type Publisher interface {
	Publish(ctx context.Context, evt domain.Event, target Target) Delivery
}
