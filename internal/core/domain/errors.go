package domain

import "errors"

var (
	ErrInvalidGroupID    = errors.New("invalid group id")
	ErrGroupNotFound     = errors.New("group not found")
	ErrGroupNameRequired = errors.New("group name is required")
	ErrNotMember         = errors.New("not a member of this group")
	ErrNotAdmin          = errors.New("only the admin can do this")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrRemoveAdmin       = errors.New("cannot remove the admin from the group")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotSender         = errors.New("you can only delete your own messages")
	ErrEmptyMessage      = errors.New("message needs text or an image")
	ErrInvalidUserID     = errors.New("invalid user id")
)
