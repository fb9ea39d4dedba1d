package fanout

import (
	"context"
	"huddle/internal/core/contracts"
	"huddle/internal/core/domain"
	"huddle/pkg/logging"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("fanout")

// Fanout delivers domain events over two legs: the room broadcast and a
// direct send to each targeted user's registered connection.
//
// Delivery is best effort. Offline users are skipped, nothing is queued or
// retried, and a user that is both in the room and targeted receives the
// frame twice with the same frame id.
type Fanout struct {
	log      *slog.Logger
	rooms    contracts.RoomBroker
	registry contracts.ConnectionRegistry
}

func NewFanout(log *slog.Logger, rooms contracts.RoomBroker, registry contracts.ConnectionRegistry) *Fanout {
	return &Fanout{log: log, rooms: rooms, registry: registry}
}

func (f *Fanout) Publish(ctx context.Context, evt domain.Event, target contracts.Target) contracts.Delivery {
	ctx, span := tracer.Start(ctx, "Fanout.Publish", trace.WithAttributes(
		attribute.String("event", string(evt.Kind())),
		attribute.String("room", target.Room),
		attribute.Int("users", len(target.Users)),
	))
	defer span.End()
	var d contracts.Delivery
	data, err := domain.EncodeEvent(evt)
	if err != nil {
		span.RecordError(err)
		f.log.ErrorContext(ctx, "fanout - publish - encode failed", logging.Event(string(evt.Kind())), logging.Err(err))
		return d
	}
	if target.Room != "" {
		d.Room = f.rooms.Broadcast(ctx, target.Room, data)
	}
	for _, userID := range target.Users {
		c, ok := f.registry.Lookup(userID)
		if !ok {
			d.Missed++
			continue
		}
		if err := c.Send(ctx, data); err != nil {
			f.log.DebugContext(ctx, "fanout - publish - direct send failed", logging.User(userID), logging.Err(err))
			d.Missed++
			continue
		}
		d.Direct++
	}
	span.SetAttributes(
		attribute.Int("delivered.room", d.Room),
		attribute.Int("delivered.direct", d.Direct),
		attribute.Int("missed", d.Missed),
	)
	f.log.DebugContext(ctx, "fanout - publish - done",
		logging.Event(string(evt.Kind())), logging.Room(target.Room), logging.Delivery(d.Room, d.Direct, d.Missed))
	return d
}
