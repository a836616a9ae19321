package services

import "errors"

// Shared lookup/authorization failures mapped to 404 and 403 by the handlers.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrTagNotFound          = errors.New("tag not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrUniversityNotFound   = errors.New("university not found")
	ErrDormitoryNotFound    = errors.New("dormitory not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotOwner             = errors.New("not the product owner")
	ErrNotParticipant       = errors.New("not part of this conversation")
	ErrSelfMessage          = errors.New("receiver cannot be the sender")
	ErrReceiverNotFound     = errors.New("receiver not found")
)
