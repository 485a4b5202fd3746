package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/todotitans/todoapp/internal/models"
	"github.com/todotitans/todoapp/internal/services"
	"github.com/todotitans/todoapp/internal/testutil"
)

type homeFixture struct {
	session  *testutil.FakeSession
	profiles *testutil.FakeProfiles
	store    *testutil.FakeTaskStore
	screens  *testutil.ScreenRecorder
	notices  *testutil.NoticeRecorder
	home     *Home
}

func newHomeFixture() *homeFixture {
	f := &homeFixture{
		session:  testutil.NewFakeSession(),
		profiles: testutil.NewFakeProfiles(),
		store:    testutil.NewFakeTaskStore(),
		screens:  &testutil.ScreenRecorder{},
		notices:  &testutil.NoticeRecorder{},
	}
	f.home = NewHome(f.session, f.profiles, f.store, f.screens, f.notices)
	return f
}

func TestEnterWithEmptyUserIDGoesUnauthenticated(t *testing.T) {
	f := newHomeFixture()

	err := f.home.Enter(context.Background(), "")
	if !errors.Is(err, services.ErrNoSession) {
		t.Fatalf("Enter = %v, want ErrNoSession", err)
	}
	if got := f.home.State(); got != HomeUnauthenticated {
		t.Errorf("state = %v, want HomeUnauthenticated", got)
	}
	if f.screens.Last() != "signin" {
		t.Errorf("did not route back to sign-in, screens = %v", f.screens.Screens)
	}
	if f.store.WatchCount() != 0 {
		t.Errorf("established %d watches for an empty user id, want 0", f.store.WatchCount())
	}
}

func TestEnterFetchesProfileAndSubscribes(t *testing.T) {
	f := newHomeFixture()
	f.profiles.AddProfile("user-ada", "Ada", "Lovelace")
	f.store.Seed(&models.Task{ID: "a", UserID: "user-ada", Title: "one", Status: models.StatusPending})

	if err := f.home.Enter(context.Background(), "user-ada"); err != nil {
		t.Fatal(err)
	}
	defer f.home.Exit()

	if got := f.home.State(); got != HomeReady {
		t.Errorf("state = %v, want HomeReady", got)
	}
	if got := f.home.DisplayName(); got != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want %q", got, "Ada Lovelace")
	}
	if f.store.WatchCount() != 1 {
		t.Fatalf("established %d watches, want 1", f.store.WatchCount())
	}
	testutil.Eventually(t, func() bool { return f.home.Tasks().Len() == 1 }, "initial snapshot mirrored")
}

func TestEnterWithMissingProfileStillReady(t *testing.T) {
	f := newHomeFixture()

	if err := f.home.Enter(context.Background(), "user-ada"); err != nil {
		t.Fatal(err)
	}
	defer f.home.Exit()

	if got := f.home.State(); got != HomeReady {
		t.Errorf("state = %v, want HomeReady despite missing profile", got)
	}
	if got := f.home.DisplayName(); got != "" {
		t.Errorf("DisplayName = %q, want empty", got)
	}
	if !f.notices.Has("Failed to retrieve user data") {
		t.Errorf("profile failure not surfaced, notices = %v", f.notices.Messages)
	}
}

func TestDateStripAdvancesOneDayPerCell(t *testing.T) {
	f := newHomeFixture()
	// Friday March 29th: the window crosses a month boundary.
	f.home.now = func() time.Time {
		return time.Date(2024, time.March, 29, 10, 0, 0, 0, time.UTC)
	}

	if got := f.home.MonthLabel(); got != "March 2024" {
		t.Errorf("MonthLabel = %q, want %q", got, "March 2024")
	}

	cells := f.home.DateStrip()
	if len(cells) != 7 {
		t.Fatalf("date strip has %d cells, want 7", len(cells))
	}

	wantDays := []string{"29", "30", "31", "1", "2", "3", "4"}
	wantWeekdays := []string{"Fri", "Sat", "Sun", "Mon", "Tue", "Wed", "Thu"}
	for i, cell := range cells {
		if cell.Day != wantDays[i] {
			t.Errorf("cell[%d].Day = %q, want %q", i, cell.Day, wantDays[i])
		}
		if cell.Weekday != wantWeekdays[i] {
			t.Errorf("cell[%d].Weekday = %q, want %q", i, cell.Weekday, wantWeekdays[i])
		}
		if cell.Today != (i == 0) {
			t.Errorf("cell[%d].Today = %v", i, cell.Today)
		}
	}
}

func TestRemoveSelectedEmptySelectionOnlyNotifies(t *testing.T) {
	f := newHomeFixture()
	f.store.Seed(&models.Task{ID: "a", UserID: "user-ada", Title: "one", Status: models.StatusPending})
	if err := f.home.Enter(context.Background(), "user-ada"); err != nil {
		t.Fatal(err)
	}
	defer f.home.Exit()
	testutil.Eventually(t, func() bool { return f.home.Tasks().Len() == 1 }, "initial snapshot mirrored")

	f.home.RemoveSelected(context.Background())

	if len(f.store.DeleteCalls) != 0 {
		t.Errorf("issued %d deletes with empty selection, want 0", len(f.store.DeleteCalls))
	}
	if !f.notices.Has("No tasks to remove") {
		t.Errorf("empty-selection message missing, notices = %v", f.notices.Messages)
	}
}

func TestRemoveSelectedDeletesAndNotifies(t *testing.T) {
	f := newHomeFixture()
	f.store.Seed(
		&models.Task{ID: "a", UserID: "user-ada", Title: "one", Status: models.StatusPending},
		&models.Task{ID: "b", UserID: "user-ada", Title: "two", Status: models.StatusPending},
	)
	if err := f.home.Enter(context.Background(), "user-ada"); err != nil {
		t.Fatal(err)
	}
	defer f.home.Exit()
	testutil.Eventually(t, func() bool { return f.home.Tasks().Len() == 2 }, "initial snapshot mirrored")

	f.home.Tasks().ToggleSelection("a")
	f.home.Tasks().ToggleSelection("b")
	f.home.RemoveSelected(context.Background())

	if len(f.store.DeleteCalls) != 2 {
		t.Errorf("issued %d deletes, want 2", len(f.store.DeleteCalls))
	}
	if !f.notices.Has("Selected tasks deleted") {
		t.Errorf("deletion message missing, notices = %v", f.notices.Messages)
	}
}

func TestSignOutEndsSessionAndSubscription(t *testing.T) {
	f := newHomeFixture()
	f.session.SetCurrentUser("user-ada")
	if err := f.home.Enter(context.Background(), "user-ada"); err != nil {
		t.Fatal(err)
	}

	f.home.SignOut(context.Background())

	if f.session.SignOutCalls != 1 {
		t.Errorf("SignOutCalls = %d, want 1", f.session.SignOutCalls)
	}
	if f.screens.Last() != "signin" {
		t.Errorf("did not navigate to sign-in, screens = %v", f.screens.Screens)
	}
	if f.store.WatchContext(0).Err() == nil {
		t.Errorf("subscription context still live after sign-out")
	}
}

func TestExitCancelsSubscriptionOnce(t *testing.T) {
	f := newHomeFixture()
	if err := f.home.Enter(context.Background(), "user-ada"); err != nil {
		t.Fatal(err)
	}

	f.home.Exit()
	f.home.Exit() // second call is a no-op

	if f.store.WatchContext(0).Err() == nil {
		t.Errorf("subscription context still live after exit")
	}
}
