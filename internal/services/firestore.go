package services

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/todotitans/todoapp/internal/models"
)

const (
	taskCollection = "tasks"
	userCollection = "users"
)

// Snapshot is one full result-set push from a live task query. Exactly one
// of Tasks or Err is meaningful.
type Snapshot struct {
	Tasks []*models.Task
	Err   error
}

// TaskStore is the remote keyed collection the client mirrors. All
// operations are per-record except Watch, which delivers the complete
// matching set on every change.
type TaskStore interface {
	// Watch establishes a live query for the owner's tasks. The full
	// matching set is pushed on every change, initial load included, in
	// whatever order the store returns. The channel closes when ctx is
	// canceled or the stream fails.
	Watch(ctx context.Context, ownerID string) <-chan Snapshot

	// CreateTask mints a new pending task with a store-assigned id.
	CreateTask(ctx context.Context, ownerID, title, description, dueDate, priority string) (*models.Task, error)

	// UpsertTask writes the whole record, keyed by its id.
	UpsertTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes the record with the given id.
	DeleteTask(ctx context.Context, taskID string) error
}

// ProfileReader is the one-shot user profile lookup.
type ProfileReader interface {
	// GetProfile returns the profile record for the given user, or
	// ErrProfileNotFound if none exists.
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// FirestoreService implements TaskStore and ProfileReader over Cloud
// Firestore.
type FirestoreService struct {
	client *firestore.Client
}

func NewFirestoreService(ctx context.Context, projectID string) (*FirestoreService, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, &StoreError{Op: "connect", Err: err}
	}

	return &FirestoreService{
		client: client,
	}, nil
}

func (fs *FirestoreService) Close() error {
	return fs.client.Close()
}

func (fs *FirestoreService) Watch(ctx context.Context, ownerID string) <-chan Snapshot {
	ch := make(chan Snapshot)

	go func() {
		defer close(ch)

		it := fs.client.Collection(taskCollection).
			Where("userId", "==", ownerID).
			Snapshots(ctx)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				deliver(ctx, ch, Snapshot{Err: &StoreError{Op: "watch", Err: err}})
				return
			}

			docs, err := qs.Documents.GetAll()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				deliver(ctx, ch, Snapshot{Err: &StoreError{Op: "watch", Err: err}})
				return
			}

			tasks := make([]*models.Task, 0, len(docs))
			for _, doc := range docs {
				var task models.Task
				if err := doc.DataTo(&task); err != nil {
					deliver(ctx, ch, Snapshot{Err: &StoreError{Op: "decode", Err: err}})
					continue
				}
				tasks = append(tasks, &task)
			}

			if !deliver(ctx, ch, Snapshot{Tasks: tasks}) {
				return
			}
		}
	}()

	return ch
}

func deliver(ctx context.Context, ch chan<- Snapshot, snap Snapshot) bool {
	select {
	case ch <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}

func (fs *FirestoreService) CreateTask(ctx context.Context, ownerID, title, description, dueDate, priority string) (*models.Task, error) {
	task := &models.Task{
		ID:            uuid.New().String(),
		UserID:        ownerID,
		PriorityLevel: priority,
		Title:         title,
		Description:   description,
		DueDate:       dueDate,
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}

	_, err := fs.client.Collection(taskCollection).Doc(task.ID).Set(ctx, task)
	if err != nil {
		return nil, &StoreError{Op: "create", Err: err}
	}

	return task, nil
}

func (fs *FirestoreService) UpsertTask(ctx context.Context, task *models.Task) error {
	_, err := fs.client.Collection(taskCollection).Doc(task.ID).Set(ctx, task)
	if err != nil {
		return &StoreError{Op: "upsert", Err: err}
	}

	return nil
}

func (fs *FirestoreService) DeleteTask(ctx context.Context, taskID string) error {
	_, err := fs.client.Collection(taskCollection).Doc(taskID).Delete(ctx)
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}

	return nil
}

func (fs *FirestoreService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	doc, err := fs.client.Collection(userCollection).Doc(userID).Get(ctx)
	if err != nil {
		if doc != nil && !doc.Exists() {
			return nil, ErrProfileNotFound
		}
		return nil, &StoreError{Op: "get profile", Err: err}
	}

	var profile models.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, &StoreError{Op: "decode profile", Err: err}
	}

	return &profile, nil
}
