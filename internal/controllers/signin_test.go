package controllers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/todotitans/todoapp/internal/testutil"
)

func TestSubmitEmptyFieldsMakesNoCredentialCall(t *testing.T) {
	cases := []struct {
		name            string
		email, password string
	}{
		{"empty password", "ada@example.com", ""},
		{"empty email", "", "hunter2"},
		{"both empty", "", ""},
		{"whitespace only", "  ", "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := testutil.NewFakeSession()
			screens := &testutil.ScreenRecorder{}
			notices := &testutil.NoticeRecorder{}
			controller := NewSignIn(session, screens, notices)

			_, err := controller.Submit(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("Submit = %v, want ErrMissingCredentials", err)
			}
			if session.SignInCalls != 0 {
				t.Errorf("issued %d credential calls, want 0", session.SignInCalls)
			}
			if !notices.Has("Please fill in both fields") {
				t.Errorf("validation message missing, notices = %v", notices.Messages)
			}
			if got := controller.State(); got != SignInIdle {
				t.Errorf("state = %v, want SignInIdle", got)
			}
		})
	}
}

func TestSubmitSuccessNavigatesHome(t *testing.T) {
	session := testutil.NewFakeSession()
	session.AddAccount("ada@example.com", "hunter2", "user-ada")
	screens := &testutil.ScreenRecorder{}
	notices := &testutil.NoticeRecorder{}
	controller := NewSignIn(session, screens, notices)

	userID, err := controller.Submit(context.Background(), "ada@example.com", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if userID != "user-ada" {
		t.Errorf("userID = %q, want %q", userID, "user-ada")
	}
	if screens.Last() != "home" {
		t.Errorf("did not navigate home, screens = %v", screens.Screens)
	}
	if len(screens.UserIDs) != 1 || screens.UserIDs[0] != "user-ada" {
		t.Errorf("navigated with user ids %v, want [user-ada]", screens.UserIDs)
	}
	if got := controller.State(); got != SignInSuccess {
		t.Errorf("state = %v, want SignInSuccess", got)
	}
	if !notices.Has("Login Successful") {
		t.Errorf("success message missing, notices = %v", notices.Messages)
	}
}

func TestSubmitFailureReturnsToIdle(t *testing.T) {
	session := testutil.NewFakeSession()
	session.AddAccount("ada@example.com", "hunter2", "user-ada")
	screens := &testutil.ScreenRecorder{}
	notices := &testutil.NoticeRecorder{}
	controller := NewSignIn(session, screens, notices)

	_, err := controller.Submit(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected auth failure")
	}
	if session.SignInCalls != 1 {
		t.Errorf("issued %d credential calls, want 1", session.SignInCalls)
	}
	if got := controller.State(); got != SignInIdle {
		t.Errorf("state = %v, want SignInIdle after failure", got)
	}
	if screens.Last() != "" {
		t.Errorf("navigated on failure, screens = %v", screens.Screens)
	}

	found := false
	for _, m := range notices.Messages {
		if strings.HasPrefix(m, "Login Failed: ") {
			found = true
		}
	}
	if !found {
		t.Errorf("failure message missing, notices = %v", notices.Messages)
	}
}

func TestResumeSessionSkipsCredentialSubmission(t *testing.T) {
	session := testutil.NewFakeSession()
	session.SetCurrentUser("user-ada")
	screens := &testutil.ScreenRecorder{}
	controller := NewSignIn(session, screens, &testutil.NoticeRecorder{})

	if !controller.ResumeSession(context.Background()) {
		t.Fatal("ResumeSession = false, want true for an existing session")
	}
	if session.SignInCalls != 0 {
		t.Errorf("issued %d credential calls, want 0", session.SignInCalls)
	}
	if screens.Last() != "home" {
		t.Errorf("did not navigate home, screens = %v", screens.Screens)
	}
	if len(screens.UserIDs) != 1 || screens.UserIDs[0] != "user-ada" {
		t.Errorf("navigated with user ids %v, want [user-ada]", screens.UserIDs)
	}
}

func TestResumeSessionWithoutPriorSession(t *testing.T) {
	session := testutil.NewFakeSession()
	screens := &testutil.ScreenRecorder{}
	controller := NewSignIn(session, screens, &testutil.NoticeRecorder{})

	if controller.ResumeSession(context.Background()) {
		t.Fatal("ResumeSession = true without a session")
	}
	if screens.Last() != "" {
		t.Errorf("navigated without a session, screens = %v", screens.Screens)
	}
	if got := controller.State(); got != SignInIdle {
		t.Errorf("state = %v, want SignInIdle", got)
	}
}
