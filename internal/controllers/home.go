package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/todotitans/todoapp/internal/services"
	"github.com/todotitans/todoapp/internal/viewmodel"
)

// HomeState is the home screen state.
type HomeState int

const (
	HomeLoading HomeState = iota
	HomeReady
	HomeUnauthenticated
)

// DayCell is one slot of the 7-day timeline.
type DayCell struct {
	Weekday string `json:"weekday"`
	Day     string `json:"day"`
	Today   bool   `json:"today"`
}

// Home drives the home screen: the signed-in user's name, the date strip,
// the live task list and the remove/sign-out actions. The task
// subscription lives exactly as long as the screen does.
type Home struct {
	session   services.Session
	profiles  services.ProfileReader
	tasks     *viewmodel.TaskList
	navigator Navigator
	notifier  Notifier
	now       func() time.Time

	mu          sync.Mutex
	state       HomeState
	displayName string
	cancel      context.CancelFunc
}

func NewHome(session services.Session, profiles services.ProfileReader, store services.TaskStore, navigator Navigator, notifier Notifier) *Home {
	return &Home{
		session:   session,
		profiles:  profiles,
		tasks:     viewmodel.NewTaskList(store, notifier),
		navigator: navigator,
		notifier:  notifier,
		now:       time.Now,
		state:     HomeLoading,
	}
}

// Enter resolves the user, reads the profile once and establishes the live
// task subscription. An empty user id never reaches the store: the screen
// goes unauthenticated and routes back to sign-in.
func (h *Home) Enter(ctx context.Context, userID string) error {
	if userID == "" {
		h.mu.Lock()
		h.state = HomeUnauthenticated
		h.mu.Unlock()
		h.navigator.ShowSignIn()
		return services.ErrNoSession
	}

	var name string
	profile, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		h.notifier.Notify("Failed to retrieve user data")
	} else {
		name = profile.FullName()
	}

	// The subscription outlives the entering request; it is tied to the
	// screen's visible lifetime and canceled by Exit.
	subCtx, cancel := context.WithCancel(context.Background())
	h.tasks.Subscribe(subCtx, userID)

	h.mu.Lock()
	h.displayName = name
	h.cancel = cancel
	h.state = HomeReady
	h.mu.Unlock()
	return nil
}

func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// DisplayName returns the user's full name, or an empty string when the
// profile read failed.
func (h *Home) DisplayName() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.displayName
}

// Tasks exposes the task list view-model.
func (h *Home) Tasks() *viewmodel.TaskList {
	return h.tasks
}

// MonthLabel returns the header above the date strip.
func (h *Home) MonthLabel() string {
	return h.now().Format("January 2006")
}

// DateStrip returns the 7-day timeline starting today. Each cell advances
// by one day.
func (h *Home) DateStrip() []DayCell {
	today := h.now()
	cells := make([]DayCell, 0, 7)
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i)
		cells = append(cells, DayCell{
			Weekday: d.Format("Mon"),
			Day:     d.Format("2"),
			Today:   i == 0,
		})
	}
	return cells
}

// RemoveSelected deletes every selected task. An empty selection issues no
// deletes and only reports that nothing was selected.
func (h *Home) RemoveSelected(ctx context.Context) {
	if h.tasks.SelectedCount() == 0 {
		h.notifier.Notify("No tasks to remove")
		return
	}

	h.tasks.RemoveSelected(ctx)
	h.notifier.Notify("Selected tasks deleted")
}

// SignOut ends the session and navigates to sign-in unconditionally,
// dropping this screen and its subscription.
func (h *Home) SignOut(ctx context.Context) {
	if err := h.session.SignOut(ctx); err != nil {
		h.notifier.Notify("Failed to sign out")
	}
	h.Exit()
	h.navigator.ShowSignIn()
}

// Exit cancels the live subscription. Safe to call more than once.
func (h *Home) Exit() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
