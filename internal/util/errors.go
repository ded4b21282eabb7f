package util

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrResourceNotFound   = errors.New("resource not found")
)
