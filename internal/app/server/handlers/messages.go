package handlers

import (
	"context"
	"huddle/internal/core/domain"
	"huddle/internal/core/services"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MessageManager is the message use case surface the handlers drive.
type MessageManager interface {
	SendGroupMessage(ctx context.Context, senderID, groupID string, in services.SendMessageInput) (*domain.GroupMessage, error)
	GroupMessages(ctx context.Context, userID, groupID string) ([]domain.GroupMessage, error)
	DeleteGroupMessage(ctx context.Context, userID, messageID string) error
	SendDirectMessage(ctx context.Context, senderID, receiverID string, in services.SendMessageInput) (*domain.DirectMessage, error)
	Conversation(ctx context.Context, userID, peerID string) ([]domain.DirectMessage, error)
	DeleteDirectMessage(ctx context.Context, userID, messageID string) error
}

type MessageHandler struct {
	messages MessageManager
}

func NewMessageHandler(messages MessageManager) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) SendGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.SendMessageInput
	if !decode(w, r, &in) {
		return
	}
	msg, err := h.messages.SendGroupMessage(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) ListGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	msgs, err := h.messages.GroupMessages(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.messages.DeleteGroupMessage(r.Context(), userID, chi.URLParam(r, "messageID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, errorBody{Message: "Message deleted successfully"})
}

func (h *MessageHandler) SendDirect(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.SendMessageInput
	if !decode(w, r, &in) {
		return
	}
	msg, err := h.messages.SendDirectMessage(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	msgs, err := h.messages.Conversation(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandler) DeleteDirect(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.messages.DeleteDirectMessage(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, errorBody{Message: "Message deleted successfully"})
}
