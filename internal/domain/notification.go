package domain

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationTypeJob         NotificationType = "job"
	NotificationTypeApplication NotificationType = "application"
	NotificationTypeInterview   NotificationType = "interview"
	NotificationTypeGeneral     NotificationType = "general"
)

// Notification is write-only from the lifecycle components' point of view:
// the dispatcher creates records, the read side below serves them back.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"notification_type"`
	IsRead      bool             `json:"is_read"`
	RelatedURL  *string          `json:"related_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	// MarkRead only touches the recipient's own row.
	MarkRead(ctx context.Context, id, recipientID string) error
}

// Notifier converts lifecycle transitions into notification records.
// Dispatch is best-effort: persistence failures are logged and must never
// fail the transition that triggered them.
type Notifier interface {
	UserRegistered(ctx context.Context, user *User)
	RoleApproved(ctx context.Context, grant *RoleGrant)
	JobStatusChanged(ctx context.Context, posting *JobPosting, oldStatus, newStatus JobStatus)
	// JobPublished broadcasts to every active job seeker.
	JobPublished(ctx context.Context, posting *JobPosting)
	ApplicationStatusChanged(ctx context.Context, app *Application, oldStatus, newStatus ApplicationStatus)
	InterviewStatusChanged(ctx context.Context, interview *Interview, oldStatus, newStatus InterviewStatus)
	ResumeCreated(ctx context.Context, resume *Resume)
	ResumeActivated(ctx context.Context, resume *Resume)
}

type NotificationUsecase interface {
	ListMine(ctx context.Context, caller *User, page, pageSize int) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, caller *User) (int64, error)
	MarkRead(ctx context.Context, caller *User, notificationID string) error
}
