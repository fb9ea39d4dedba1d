package domain

// EventKind is the wire name of a server to client event.
type EventKind string

const (
	KindPresenceUpdate      EventKind = "presence-update"
	KindNewGroup            EventKind = "new-group"
	KindAddedToGroup        EventKind = "added-to-group"
	KindRemovedFromGroup    EventKind = "removed-from-group"
	KindMemberRemoved       EventKind = "member-removed"
	KindGroupUpdated        EventKind = "group-updated"
	KindGroupDeleted        EventKind = "group-deleted"
	KindNewGroupMessage     EventKind = "new-group-message"
	KindGroupMessageDeleted EventKind = "group-message-deleted"
	KindNewDirectMessage    EventKind = "new-direct-message"
	KindMessageDeleted      EventKind = "message-deleted"
	KindAck                 EventKind = "ack"
	KindError               EventKind = "error"
)

// Event is the closed set of domain events the fan-out delivers. Only the
// types in this file implement it.
type Event interface {
	Kind() EventKind
	// Payload is the value marshaled into the frame's data field.
	Payload() any
	sealed()
}

type GroupRef struct {
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
}

type MemberRef struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

type GroupCreated struct{ Group Group }

type AddedToGroup struct{ Group Group }

type RemovedFromGroup struct{ GroupRef }

type MemberRemoved struct{ MemberRef }

type GroupUpdated struct{ Group Group }

type GroupDeleted struct{ GroupRef }

type GroupMessageSent struct{ Message GroupMessage }

type GroupMessageDeleted struct{ MessageID string }

type DirectMessageSent struct{ Message DirectMessage }

type MessageDeleted struct{ MessageID string }

func (GroupCreated) Kind() EventKind        { return KindNewGroup }
func (AddedToGroup) Kind() EventKind        { return KindAddedToGroup }
func (RemovedFromGroup) Kind() EventKind    { return KindRemovedFromGroup }
func (MemberRemoved) Kind() EventKind       { return KindMemberRemoved }
func (GroupUpdated) Kind() EventKind        { return KindGroupUpdated }
func (GroupDeleted) Kind() EventKind        { return KindGroupDeleted }
func (GroupMessageSent) Kind() EventKind    { return KindNewGroupMessage }
func (GroupMessageDeleted) Kind() EventKind { return KindGroupMessageDeleted }
func (DirectMessageSent) Kind() EventKind   { return KindNewDirectMessage }
func (MessageDeleted) Kind() EventKind      { return KindMessageDeleted }

func (e GroupCreated) Payload() any        { return e.Group }
func (e AddedToGroup) Payload() any        { return e.Group }
func (e RemovedFromGroup) Payload() any    { return e.GroupRef }
func (e MemberRemoved) Payload() any       { return e.MemberRef }
func (e GroupUpdated) Payload() any        { return e.Group }
func (e GroupDeleted) Payload() any        { return e.GroupRef }
func (e GroupMessageSent) Payload() any    { return e.Message }
func (e GroupMessageDeleted) Payload() any { return e.MessageID }
func (e DirectMessageSent) Payload() any   { return e.Message }
func (e MessageDeleted) Payload() any      { return e.MessageID }

func (GroupCreated) sealed()        {}
func (AddedToGroup) sealed()        {}
func (RemovedFromGroup) sealed()    {}
func (MemberRemoved) sealed()       {}
func (GroupUpdated) sealed()        {}
func (GroupDeleted) sealed()        {}
func (GroupMessageSent) sealed()    {}
func (GroupMessageDeleted) sealed() {}
func (DirectMessageSent) sealed()   {}
func (MessageDeleted) sealed()      {}
