package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserSummary is the public projection of a user embedded in records.
type UserSummary struct {
	ID         string `json:"_id"`
	FullName   string `json:"fullName"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// Group is a named set of members administered by one user.
type Group struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	GroupPic    string    `json:"groupPic,omitempty"`
	AdminID     string    `json:"admin"`
	MemberIDs   []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewGroup(name, description, groupPic, adminID string, members []string) *Group {
	now := time.Now().UTC()
	return &Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		GroupPic:    groupPic,
		AdminID:     adminID,
		MemberIDs:   members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (g *Group) IsAdmin(userID string) bool {
	return g.AdminID == userID
}

// GroupMessage is a message posted to a group. Sender is populated on reads.
type GroupMessage struct {
	ID        string      `json:"_id"`
	GroupID   string      `json:"groupId"`
	SenderID  string      `json:"-"`
	Sender    UserSummary `json:"senderId"`
	Text      string      `json:"text,omitempty"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewGroupMessage(groupID, senderID, text, image string) *GroupMessage {
	return &GroupMessage{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		SenderID:  senderID,
		Sender:    UserSummary{ID: senderID},
		Text:      text,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
}

// DirectMessage is a message between two users.
type DirectMessage struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewDirectMessage(senderID, receiverID, text, image string) *DirectMessage {
	return &DirectMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Image:      image,
		CreatedAt:  time.Now().UTC(),
	}
}

// Participants returns both ends of the conversation.
func (m *DirectMessage) Participants() []string {
	if m.SenderID == m.ReceiverID {
		return []string{m.SenderID}
	}
	return []string{m.SenderID, m.ReceiverID}
}

// GroupRoom names the broadcast room of a group.
func GroupRoom(groupID string) string {
	return "group:" + groupID
}
