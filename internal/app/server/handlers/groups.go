package handlers

import (
	"context"
	"huddle/internal/core/domain"
	"huddle/internal/core/services"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GroupManager is the group use case surface the handlers drive.
type GroupManager interface {
	CreateGroup(ctx context.Context, adminID string, in services.CreateGroupInput) (*domain.Group, error)
	UserGroups(ctx context.Context, userID string) ([]domain.Group, error)
	Group(ctx context.Context, userID, groupID string) (*domain.Group, error)
	AddMembers(ctx context.Context, userID, groupID string, in services.AddMembersInput) (*domain.Group, error)
	RemoveMember(ctx context.Context, userID, groupID, memberID string) (*domain.Group, error)
	UpdateGroup(ctx context.Context, userID, groupID string, in services.UpdateGroupInput) (*domain.Group, error)
	DeleteGroup(ctx context.Context, userID, groupID string) error
}

type GroupHandler struct {
	groups GroupManager
}

func NewGroupHandler(groups GroupManager) *GroupHandler {
	return &GroupHandler{groups: groups}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.CreateGroupInput
	if !decode(w, r, &in) {
		return
	}
	group, err := h.groups.CreateGroup(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	groups, err := h.groups.UserGroups(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	group, err := h.groups.Group(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.AddMembersInput
	if !decode(w, r, &in) {
		return
	}
	group, err := h.groups.AddMembers(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	group, err := h.groups.RemoveMember(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.UpdateGroupInput
	if !decode(w, r, &in) {
		return
	}
	group, err := h.groups.UpdateGroup(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.groups.DeleteGroup(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, errorBody{Message: "Group deleted successfully"})
}
