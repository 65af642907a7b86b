package service

import "errors"

var (
	ErrNotFound       = errors.New("not_found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
	// ErrPushFailed — сообщение записано, но батч пушей прервался
	ErrPushFailed     = errors.New("push_failed")
)
