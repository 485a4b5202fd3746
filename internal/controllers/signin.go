package controllers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/todotitans/todoapp/internal/services"
)

// ErrMissingCredentials is returned when submit is attempted with an empty
// email or password. No credential call is made in that case.
var ErrMissingCredentials = errors.New("email and password are required")

// SignInState is the sign-in screen state.
type SignInState int

const (
	SignInIdle SignInState = iota
	SignInSubmitting
	SignInSuccess
)

// SignIn drives the sign-in screen: local validation, credential
// submission and the resume shortcut for an already signed-in user. A
// failed submission returns the screen to idle; a successful one ends the
// controller's lifecycle.
type SignIn struct {
	session   services.Session
	navigator Navigator
	notifier  Notifier

	mu    sync.Mutex
	state SignInState
}

func NewSignIn(session services.Session, navigator Navigator, notifier Notifier) *SignIn {
	return &SignIn{
		session:   session,
		navigator: navigator,
		notifier:  notifier,
		state:     SignInIdle,
	}
}

func (s *SignIn) State() SignInState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ResumeSession checks for an existing session on screen entry. If one is
// present the controller navigates straight to the home screen without any
// credential call.
func (s *SignIn) ResumeSession(ctx context.Context) bool {
	userID, err := s.session.CurrentUserID(ctx)
	if err != nil || userID == "" {
		return false
	}

	s.setState(SignInSuccess)
	s.navigator.ShowHome(userID)
	return true
}

// Submit validates and submits the credentials, returning the signed-in
// user id on success.
func (s *SignIn) Submit(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		s.notifier.Notify("Please fill in both fields")
		return "", ErrMissingCredentials
	}

	s.setState(SignInSubmitting)

	userID, err := s.session.SignIn(ctx, email, password)
	if err != nil {
		s.setState(SignInIdle)
		s.notifier.Notify("Login Failed: " + err.Error())
		return "", err
	}

	s.setState(SignInSuccess)
	s.notifier.Notify("Login Successful")
	s.navigator.ShowHome(userID)
	return userID, nil
}

func (s *SignIn) setState(state SignInState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
