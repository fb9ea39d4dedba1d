package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Frame is the envelope of every server to client websocket message.
type Frame struct {
	ID     string    `json:"id"`
	Event  EventKind `json:"event"`
	Data   any       `json:"data,omitempty"`
	SentAt time.Time `json:"sent_at"`
}

func NewFrame(kind EventKind, data any) Frame {
	return Frame{
		ID:     uuid.NewString(),
		Event:  kind,
		Data:   data,
		SentAt: time.Now().UTC(),
	}
}

// EncodeEvent wraps a domain event into a frame ready for the wire.
func EncodeEvent(evt Event) ([]byte, error) {
	return json.Marshal(NewFrame(evt.Kind(), evt.Payload()))
}

// EncodePresence builds the presence-update frame. A nil list is sent as [].
func EncodePresence(online []string) ([]byte, error) {
	if online == nil {
		online = []string{}
	}
	return json.Marshal(NewFrame(KindPresenceUpdate, online))
}

// CommandName is a client to server command.
type CommandName string

const (
	CommandJoinGroup    CommandName = "join-group"
	CommandLeaveGroup   CommandName = "leave-group"
	CommandRejoinGroups CommandName = "rejoin-groups"
)

// Command is the inbound websocket frame.
type Command struct {
	Name    CommandName `json:"command"`
	GroupID string      `json:"groupId,omitempty"`
}

type AckStatus string

const (
	AckOK AckStatus = "ok"
)

// AckPayload answers a command.
type AckPayload struct {
	Command CommandName `json:"command"`
	GroupID string      `json:"groupId,omitempty"`
	Groups  []string    `json:"groups,omitempty"`
	Status  AckStatus   `json:"status"`
}

// ErrorPayload is a websocket safe error.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeBadFrame       = "bad_frame"
	ErrCodeUnknownCommand = "unknown_command"
	ErrCodeBadGroup       = "bad_group"
	ErrCodeAnonymous      = "anonymous"
)
