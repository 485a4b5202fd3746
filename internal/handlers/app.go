package handlers

import (
	"context"
	"sync"

	"github.com/todotitans/todoapp/internal/controllers"
	"github.com/todotitans/todoapp/internal/models"
	"github.com/todotitans/todoapp/internal/services"
)

const (
	screenSignIn = "signin"
	screenHome   = "home"
)

// App is the single-user application shell: which screen is active, the
// live home controller and the notification feed. It implements the
// controllers' Navigator port, so screen changes requested by a controller
// land here.
type App struct {
	session  services.Session
	store    services.TaskStore
	profiles services.ProfileReader
	notices  *Notices

	mu     sync.Mutex
	screen string
	userID string
	home   *controllers.Home
}

func NewApp(session services.Session, store services.TaskStore, profiles services.ProfileReader) *App {
	return &App{
		session:  session,
		store:    store,
		profiles: profiles,
		notices:  NewNotices(),
		screen:   screenSignIn,
	}
}

// ShowHome implements controllers.Navigator.
func (a *App) ShowHome(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.screen = screenHome
	a.userID = userID
}

// ShowSignIn implements controllers.Navigator. The active home screen, if
// any, is dropped so its subscription ends with it.
func (a *App) ShowSignIn() {
	a.mu.Lock()
	home := a.home
	a.home = nil
	a.userID = ""
	a.screen = screenSignIn
	a.mu.Unlock()

	if home != nil {
		home.Exit()
	}
}

func (a *App) Notices() *Notices {
	return a.notices
}

// Screen reports which screen is active.
func (a *App) Screen() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

// Home returns the active home controller, or nil when no user is on the
// home screen.
func (a *App) Home() *controllers.Home {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.home
}

// SignIn submits credentials through a fresh sign-in controller and, on
// success, enters the home screen.
func (a *App) SignIn(ctx context.Context, email, password string) (string, error) {
	signIn := controllers.NewSignIn(a.session, a, a.notices)
	userID, err := signIn.Submit(ctx, email, password)
	if err != nil {
		return "", err
	}
	if err := a.enterHome(ctx, userID); err != nil {
		return "", err
	}
	return userID, nil
}

// Resume enters the home screen directly when a prior session is still
// valid. No credential call is made either way.
func (a *App) Resume(ctx context.Context) (string, bool) {
	signIn := controllers.NewSignIn(a.session, a, a.notices)
	if !signIn.ResumeSession(ctx) {
		return "", false
	}

	a.mu.Lock()
	userID := a.userID
	a.mu.Unlock()

	if err := a.enterHome(ctx, userID); err != nil {
		return "", false
	}
	return userID, true
}

// SignOut routes through the home controller when one is active so the
// subscription is torn down; otherwise it just ends the session.
func (a *App) SignOut(ctx context.Context) {
	a.mu.Lock()
	home := a.home
	a.mu.Unlock()

	if home != nil {
		home.SignOut(ctx)
		return
	}

	if err := a.session.SignOut(ctx); err != nil {
		a.notices.Notify("Failed to sign out")
	}
	a.ShowSignIn()
}

// CreateTask mints a task for the signed-in user. The new record shows up
// on the home screen via the subscription push, not synchronously.
func (a *App) CreateTask(ctx context.Context, title, description, dueDate, priority string) (*models.Task, error) {
	a.mu.Lock()
	userID := a.userID
	a.mu.Unlock()

	if userID == "" {
		return nil, services.ErrNoSession
	}
	return a.store.CreateTask(ctx, userID, title, description, dueDate, priority)
}

// enterHome reuses the live home controller when the same user re-enters;
// otherwise the old screen is exited and a fresh one enters.
func (a *App) enterHome(ctx context.Context, userID string) error {
	a.mu.Lock()
	if a.home != nil && a.userID == userID {
		a.mu.Unlock()
		return nil
	}
	old := a.home
	a.mu.Unlock()

	if old != nil {
		old.Exit()
	}

	home := controllers.NewHome(a.session, a.profiles, a.store, a, a.notices)
	if err := home.Enter(ctx, userID); err != nil {
		return err
	}

	a.mu.Lock()
	a.home = home
	a.userID = userID
	a.screen = screenHome
	a.mu.Unlock()
	return nil
}
