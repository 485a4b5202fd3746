package models

import (
	"time"
)

// Statuses written by this client. The field itself is free text in the
// store; unknown values read back are kept as-is and render as not
// completed.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Task represents a single to-do record owned by a user.
type Task struct {
	ID            string    `firestore:"id" json:"id"`
	UserID        string    `firestore:"userId" json:"userId"`
	PriorityLevel string    `firestore:"priorityLevel" json:"priorityLevel"`
	Title         string    `firestore:"title" json:"title"`
	Description   string    `firestore:"description" json:"description"`
	DueDate       string    `firestore:"dueDate" json:"dueDate"` // display text, empty means no due date
	Status        string    `firestore:"status" json:"status"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}

// Completed reports whether the task is marked done.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}
