package services

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// AppName is the application directory name under the user config dir.
const AppName = "todoapp"

// Session is the identity collaborator: credential checks, the current
// user, and sign-out. Implementations persist the session so an app
// restart does not force a fresh sign-in.
type Session interface {
	// SignIn verifies the credentials and returns the user id.
	SignIn(ctx context.Context, email, password string) (string, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// CurrentUserID returns the signed-in user id, or ErrNoSession.
	CurrentUserID(ctx context.Context) (string, error)
}

// sessionFile is the on-disk shape of a persisted session.
type sessionFile struct {
	UserID string        `json:"userId"`
	Token  *oauth2.Token `json:"token"`
}

// FirebaseSession implements Session over the Google Identity Toolkit API,
// the email/password surface behind Firebase Authentication. The verified
// session is cached on disk as a user id plus its ID token.
type FirebaseSession struct {
	rp   *identitytoolkit.RelyingpartyService
	path string

	mu     sync.Mutex
	userID string
	token  *oauth2.Token
}

// NewFirebaseSession creates a session service using the given web API key.
// A previously persisted session at sessionPath is restored if its token is
// still valid.
func NewFirebaseSession(ctx context.Context, apiKey, sessionPath string) (*FirebaseSession, error) {
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &AuthError{Op: "connect", Err: err}
	}

	s := &FirebaseSession{
		rp:   svc.Relyingparty,
		path: sessionPath,
	}
	s.restore()
	return s, nil
}

// DefaultSessionPath returns the session file location. Uses
// XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultSessionPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "session.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(AppName, "session.json")
	}
	return filepath.Join(home, ".config", AppName, "session.json")
}

func (s *FirebaseSession) SignIn(ctx context.Context, email, password string) (string, error) {
	resp, err := s.rp.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return "", &AuthError{Op: "sign-in", Err: err}
	}

	token := &oauth2.Token{
		AccessToken:  resp.IdToken,
		RefreshToken: resp.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	s.mu.Lock()
	s.userID = resp.LocalId
	s.token = token
	s.mu.Unlock()

	if err := s.save(); err != nil {
		log.Printf("Failed to persist session: %v", err)
	}

	return resp.LocalId, nil
}

func (s *FirebaseSession) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.userID = ""
	s.token = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return &AuthError{Op: "sign-out", Err: err}
	}
	return nil
}

func (s *FirebaseSession) CurrentUserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" || s.token == nil || !s.token.Valid() {
		return "", ErrNoSession
	}
	return s.userID, nil
}

// restore loads a persisted session. An unreadable file or an expired
// token just means no prior session.
func (s *FirebaseSession) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("Ignoring invalid session file: %v", err)
		return
	}
	if file.UserID == "" || file.Token == nil || !file.Token.Valid() {
		return
	}

	s.mu.Lock()
	s.userID = file.UserID
	s.token = file.Token
	s.mu.Unlock()
}

func (s *FirebaseSession) save() error {
	s.mu.Lock()
	file := sessionFile{UserID: s.userID, Token: s.token}
	s.mu.Unlock()

	data, err := json.Marshal(file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
