package logging

import "log/slog"

func User(id string) slog.Attr {
	return slog.String("user_id", id)
}

func Group(id string) slog.Attr {
	return slog.String("group_id", id)
}

func Room(name string) slog.Attr {
	return slog.String("room", name)
}

func Conn(id string) slog.Attr {
	return slog.String("conn_id", id)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Command is an inbound socket command name.
func Command(name string) slog.Attr {
	return slog.String("command", name)
}

func Message(id string) slog.Attr {
	return slog.String("message_id", id)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func TraceID(id string) slog.Attr {
	return slog.String("trace_id", id)
}

// Delivery summarizes a fan-out: room receivers, direct receivers, and
// targeted users that were offline.
func Delivery(room, direct, missed int) slog.Attr {
	return slog.Group("delivery",
		slog.Int("room", room),
		slog.Int("direct", direct),
		slog.Int("missed", missed),
	)
}

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
