package entities

import "time"

// Reminder represents a follow-up reminder attached to a visit.
type Reminder struct {
	ID          string     `json:"id" firestore:"-"`
	OwnerUserID string     `json:"owner_user_id" firestore:"ownerUserId"`
	VisitID     string     `json:"visit_id,omitempty" firestore:"visitId"`
	Title       string     `json:"title" firestore:"title"`
	Notes       string     `json:"notes,omitempty" firestore:"notes"`
	DueAt       time.Time  `json:"due_at" firestore:"dueAt"`
	Completed   bool       `json:"completed" firestore:"completed"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}
