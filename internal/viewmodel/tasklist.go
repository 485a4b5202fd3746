// Package viewmodel holds the in-memory mirror of the subscribed task
// query and its selection state.
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/todotitans/todoapp/internal/models"
	"github.com/todotitans/todoapp/internal/services"
)

// ErrTaskNotFound is returned when an operation names a task id that is
// not in the mirrored sequence.
var ErrTaskNotFound = errors.New("task not found")

// Notifier surfaces transient user-visible messages.
type Notifier interface {
	Notify(message string)
}

// TaskList mirrors the live query result set. Every push replaces the
// whole sequence in store order; the selection set is keyed by task id so
// a push cannot shift it onto different records.
type TaskList struct {
	store    services.TaskStore
	notifier Notifier

	mu       sync.Mutex
	tasks    []*models.Task
	selected map[string]struct{}
}

func NewTaskList(store services.TaskStore, notifier Notifier) *TaskList {
	return &TaskList{
		store:    store,
		notifier: notifier,
		selected: make(map[string]struct{}),
	}
}

// Subscribe establishes the live query and mirrors every push until ctx is
// canceled.
func (l *TaskList) Subscribe(ctx context.Context, ownerID string) {
	ch := l.store.Watch(ctx, ownerID)
	go func() {
		for snap := range ch {
			if snap.Err != nil {
				l.notifier.Notify("Failed to load tasks")
				continue
			}
			l.replace(snap.Tasks)
		}
	}()
}

func (l *TaskList) replace(tasks []*models.Task) {
	present := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		present[t.ID] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = tasks
	for id := range l.selected {
		if _, ok := present[id]; !ok {
			delete(l.selected, id)
		}
	}
}

// Tasks returns the mirrored sequence in store order.
func (l *TaskList) Tasks() []*models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *TaskList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// ToggleSelection flips the task's membership in the selection set and
// reports the new state. Unknown ids are ignored.
func (l *TaskList) ToggleSelection(taskID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.find(taskID) == nil {
		return false, ErrTaskNotFound
	}
	if _, ok := l.selected[taskID]; ok {
		delete(l.selected, taskID)
		return false, nil
	}
	l.selected[taskID] = struct{}{}
	return true, nil
}

// IsSelected reports whether the task is in the selection set.
func (l *TaskList) IsSelected(taskID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.selected[taskID]
	return ok
}

// Selected returns the selected records in list order.
func (l *TaskList) Selected() []*models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*models.Task
	for _, t := range l.tasks {
		if _, ok := l.selected[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (l *TaskList) SelectedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.selected)
}

// SetStatus flips the record's status locally and writes the whole record
// back. A failed write is reported to the user and the local value stands
// until the next subscription push reconciles it.
func (l *TaskList) SetStatus(ctx context.Context, taskID string, completed bool) error {
	l.mu.Lock()
	task := l.find(taskID)
	if task == nil {
		l.mu.Unlock()
		return ErrTaskNotFound
	}
	if completed {
		task.Status = models.StatusCompleted
	} else {
		task.Status = models.StatusPending
	}
	record := *task
	l.mu.Unlock()

	if err := l.store.UpsertTask(ctx, &record); err != nil {
		l.notifier.Notify("Failed to update task")
		return err
	}
	return nil
}

// RemoveSelected issues one delete per selected record, then clears the
// selection regardless of individual outcomes. The pushed snapshot, not a
// local splice, removes the records from the sequence.
func (l *TaskList) RemoveSelected(ctx context.Context) int {
	targets := l.Selected()
	for _, t := range targets {
		if err := l.store.DeleteTask(ctx, t.ID); err != nil {
			l.notifier.Notify("Failed to delete task")
		}
	}

	l.mu.Lock()
	l.selected = make(map[string]struct{})
	l.mu.Unlock()

	return len(targets)
}

// find must be called with the lock held.
func (l *TaskList) find(taskID string) *models.Task {
	for _, t := range l.tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}
