package services

import "errors"

// Validation and lookup failures the API layer maps to HTTP statuses.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrAddressRequired    = errors.New("address is required")
	ErrReviewNameRequired = errors.New("reviewer name is required")
	ErrMessageRequired    = errors.New("message is required")
	ErrLanguageRequired   = errors.New("target language is required")
	ErrChatUpstream       = errors.New("chat service unavailable")
)
