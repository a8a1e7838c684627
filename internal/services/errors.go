package services

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrUnknownModel         = errors.New("unknown model")
	ErrEmptyTitle           = errors.New("title cannot be empty")
	ErrEmptyName            = errors.New("project name cannot be empty")
)
