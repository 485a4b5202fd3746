// Package testutil provides in-memory collaborator fakes for tests.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/todotitans/todoapp/internal/models"
	"github.com/todotitans/todoapp/internal/services"
)

// FakeTaskStore is an in-memory services.TaskStore. Tests seed it, drive
// watch pushes explicitly and inspect the recorded calls.
type FakeTaskStore struct {
	mu       sync.Mutex
	tasks    []*models.Task
	watchers []chan services.Snapshot
	watchCtx []context.Context
	nextID   int

	// Error injection
	CreateErr error
	UpsertErr error
	DeleteErr error

	// Call records
	CreateCalls int
	UpsertCalls []models.Task
	DeleteCalls []string
}

func NewFakeTaskStore() *FakeTaskStore {
	return &FakeTaskStore{}
}

// Seed replaces the stored tasks without notifying watchers.
func (f *FakeTaskStore) Seed(tasks ...*models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]*models.Task(nil), tasks...)
}

// Watch implements services.TaskStore. The owner's current set is
// delivered immediately, mirroring the real store's initial load.
func (f *FakeTaskStore) Watch(ctx context.Context, ownerID string) <-chan services.Snapshot {
	ch := make(chan services.Snapshot, 16)

	f.mu.Lock()
	f.watchers = append(f.watchers, ch)
	f.watchCtx = append(f.watchCtx, ctx)
	initial := f.ownedLocked(ownerID)
	f.mu.Unlock()

	ch <- services.Snapshot{Tasks: initial}

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		for i, w := range f.watchers {
			if w == ch {
				f.watchers = append(f.watchers[:i], f.watchers[i+1:]...)
				break
			}
		}
		close(ch)
		f.mu.Unlock()
	}()

	return ch
}

// Push delivers a full result set to every live watcher.
func (f *FakeTaskStore) Push(tasks ...*models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]*models.Task(nil), tasks...)
	for _, w := range f.watchers {
		w <- services.Snapshot{Tasks: append([]*models.Task(nil), tasks...)}
	}
}

// PushErr delivers a failed push to every live watcher.
func (f *FakeTaskStore) PushErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.watchers {
		w <- services.Snapshot{Err: err}
	}
}

// WatchCount reports how many watches were established.
func (f *FakeTaskStore) WatchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchCtx)
}

// WatchContext returns the context of the i-th established watch.
func (f *FakeTaskStore) WatchContext(i int) context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watchCtx[i]
}

// CreateTask implements services.TaskStore.
func (f *FakeTaskStore) CreateTask(ctx context.Context, ownerID, title, description, dueDate, priority string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.nextID++
	task := &models.Task{
		ID:            "task-" + strconv.Itoa(f.nextID),
		UserID:        ownerID,
		PriorityLevel: priority,
		Title:         title,
		Description:   description,
		DueDate:       dueDate,
		Status:        models.StatusPending,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpsertTask implements services.TaskStore.
func (f *FakeTaskStore) UpsertTask(ctx context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpsertCalls = append(f.UpsertCalls, *task)
	if f.UpsertErr != nil {
		return f.UpsertErr
	}

	for i, t := range f.tasks {
		if t.ID == task.ID {
			record := *task
			f.tasks[i] = &record
			return nil
		}
	}
	record := *task
	f.tasks = append(f.tasks, &record)
	return nil
}

// DeleteTask implements services.TaskStore.
func (f *FakeTaskStore) DeleteTask(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls = append(f.DeleteCalls, taskID)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeTaskStore) ownedLocked(ownerID string) []*models.Task {
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out
}

// Account is a credential pair known to FakeSession.
type Account struct {
	Password string
	UserID   string
}

// FakeSession is an in-memory services.Session.
type FakeSession struct {
	mu       sync.Mutex
	accounts map[string]Account
	userID   string

	// Error injection
	SignInErr error

	// Call records
	SignInCalls  int
	SignOutCalls int
}

func NewFakeSession() *FakeSession {
	return &FakeSession{
		accounts: make(map[string]Account),
	}
}

// AddAccount registers credentials the fake will accept.
func (f *FakeSession) AddAccount(email, password, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[email] = Account{Password: password, UserID: userID}
}

// SetCurrentUser marks a user as already signed in.
func (f *FakeSession) SetCurrentUser(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID = userID
}

// SignIn implements services.Session.
func (f *FakeSession) SignIn(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SignInCalls++
	if f.SignInErr != nil {
		return "", f.SignInErr
	}

	account, ok := f.accounts[email]
	if !ok || account.Password != password {
		return "", &services.AuthError{Op: "sign-in", Err: errors.New("INVALID_PASSWORD")}
	}
	f.userID = account.UserID
	return account.UserID, nil
}

// SignOut implements services.Session.
func (f *FakeSession) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignOutCalls++
	f.userID = ""
	return nil
}

// CurrentUserID implements services.Session.
func (f *FakeSession) CurrentUserID(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userID == "" {
		return "", services.ErrNoSession
	}
	return f.userID, nil
}

// FakeProfiles is an in-memory services.ProfileReader.
type FakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile

	// Error injection
	GetErr error
}

func NewFakeProfiles() *FakeProfiles {
	return &FakeProfiles{
		profiles: make(map[string]models.UserProfile),
	}
}

// AddProfile registers a profile record.
func (f *FakeProfiles) AddProfile(userID, firstName, lastName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = models.UserProfile{FirstName: firstName, LastName: lastName}
}

// GetProfile implements services.ProfileReader.
func (f *FakeProfiles) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return nil, f.GetErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	return &profile, nil
}

// NoticeRecorder records notifications for assertions.
type NoticeRecorder struct {
	mu       sync.Mutex
	Messages []string
}

func (n *NoticeRecorder) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
}

// Has reports whether the message was recorded.
func (n *NoticeRecorder) Has(message string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range n.Messages {
		if m == message {
			return true
		}
	}
	return false
}

// ScreenRecorder records navigation for assertions.
type ScreenRecorder struct {
	mu      sync.Mutex
	Screens []string
	UserIDs []string
}

func (r *ScreenRecorder) ShowHome(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Screens = append(r.Screens, "home")
	r.UserIDs = append(r.UserIDs, userID)
}

func (r *ScreenRecorder) ShowSignIn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Screens = append(r.Screens, "signin")
}

// Last returns the most recent screen, or empty when none was shown.
func (r *ScreenRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Screens) == 0 {
		return ""
	}
	return r.Screens[len(r.Screens)-1]
}
