package entity

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNotRegistered  = errors.New("user is not registered")
	ErrNotAdmin       = errors.New("only the project admin can do this")
	ErrNotAllowed     = errors.New("action is not allowed for this user")
	ErrAlreadyMember  = errors.New("user is already a member")
	ErrAlreadyPending = errors.New("join request is already pending")
)
