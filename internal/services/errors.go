package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned when no user is signed in.
	ErrNoSession = errors.New("no active session")

	// ErrProfileNotFound is returned when a user has no profile record.
	ErrProfileNotFound = errors.New("user profile not found")
)

// AuthError reports a rejected credential check or a transport failure
// while talking to the identity service.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StoreError reports a rejected or failed task store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("task store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
