package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/internal/domain"
)

// notifier converts lifecycle transitions into notification records.
// Everything here is best-effort: persistence failures are logged and never
// propagate to the transition that triggered the dispatch.
type notifier struct {
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	log              *slog.Logger
}

func NewNotifier(
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	log *slog.Logger,
) domain.Notifier {
	return &notifier{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		log:              log,
	}
}

var jobStatusMessages = map[domain.JobStatus]string{
	domain.JobStatusPending:  "Your job posting approval request has been submitted.",
	domain.JobStatusApproved: "Your job posting has been approved.",
	domain.JobStatusRejected: "Your job posting has been rejected.",
}

var applicationStatusMessages = map[domain.ApplicationStatus]string{
	domain.ApplicationStatusApplied:   "Your application has been submitted.",
	domain.ApplicationStatusWithdrawn: "You have withdrawn your application.",
	domain.ApplicationStatusOffered:   "You have received a job offer.",
	domain.ApplicationStatusRejected:  "Your application has been rejected.",
	domain.ApplicationStatusHired:     "You have been hired.",
}

var interviewStatusMessages = map[domain.InterviewStatus]string{
	domain.InterviewStatusScheduled: "You have a new interview scheduled.",
	domain.InterviewStatusCanceled:  "Your interview has been canceled.",
	domain.InterviewStatusCompleted: "Your interview has been completed.",
}

func (n *notifier) persist(ctx context.Context, record *domain.Notification) {
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now()
	if err := n.notificationRepo.Create(ctx, record); err != nil {
		n.log.Error("failed to persist notification",
			"recipient", record.RecipientID,
			"type", record.Type,
			"error", err,
		)
	}
}

func (n *notifier) UserRegistered(ctx context.Context, user *domain.User) {
	n.persist(ctx, &domain.Notification{
		RecipientID: user.ID,
		Title:       "Welcome to the platform",
		Message:     "Your account has been registered successfully.",
		Type:        domain.NotificationTypeGeneral,
	})
}

func (n *notifier) RoleApproved(ctx context.Context, grant *domain.RoleGrant) {
	n.persist(ctx, &domain.Notification{
		RecipientID: grant.UserID,
		Title:       "Role approved",
		Message:     fmt.Sprintf("Your %s role has been approved by an administrator.", grant.Role),
		Type:        domain.NotificationTypeGeneral,
	})
}

// JobStatusChanged notifies the posting owner. Statuses without a canned
// message produce no record.
func (n *notifier) JobStatusChanged(ctx context.Context, posting *domain.JobPosting, oldStatus, newStatus domain.JobStatus) {
	message, ok := jobStatusMessages[newStatus]
	if !ok {
		return
	}
	if posting.RecruiterUserID == nil {
		n.log.Error("job posting has no resolvable owner", "posting", posting.ID)
		return
	}
	related := "/jobs/" + posting.Slug
	n.persist(ctx, &domain.Notification{
		RecipientID: *posting.RecruiterUserID,
		Title:       "Job posting status updated",
		Message:     message,
		Type:        domain.NotificationTypeJob,
		RelatedURL:  &related,
	})
}

// JobPublished fans out to every active job seeker. Deliberately coarse:
// no matching, every seeker gets the record. Partial failure is logged per
// recipient and never aborts the fan-out.
func (n *notifier) JobPublished(ctx context.Context, posting *domain.JobPosting) {
	seekerIDs, err := n.userRepo.ListActiveJobSeekerIDs(ctx)
	if err != nil {
		n.log.Error("failed to list job seekers for broadcast", "posting", posting.ID, "error", err)
		return
	}
	related := "/jobs/" + posting.Slug
	for _, id := range seekerIDs {
		n.persist(ctx, &domain.Notification{
			RecipientID: id,
			Title:       "New job available",
			Message:     fmt.Sprintf("The job %q has been posted.", posting.Title),
			Type:        domain.NotificationTypeJob,
			RelatedURL:  &related,
		})
	}
}

// ApplicationStatusChanged notifies the job seeker. Unmapped statuses fall
// back to a generic message so a transition is never silently dropped.
func (n *notifier) ApplicationStatusChanged(ctx context.Context, app *domain.Application, oldStatus, newStatus domain.ApplicationStatus) {
	message, ok := applicationStatusMessages[newStatus]
	if !ok {
		message = fmt.Sprintf("Your application status has been updated: %s", newStatus)
	}
	related := "/applications/" + app.ID
	n.persist(ctx, &domain.Notification{
		RecipientID: app.JobSeekerID,
		Title:       "Application status updated",
		Message:     message,
		Type:        domain.NotificationTypeApplication,
		RelatedURL:  &related,
	})
}

// InterviewStatusChanged notifies the job seeker behind the application.
func (n *notifier) InterviewStatusChanged(ctx context.Context, interview *domain.Interview, oldStatus, newStatus domain.InterviewStatus) {
	if interview.SeekerUserID == nil {
		n.log.Error("interview has no resolvable job seeker", "interview", interview.ID)
		return
	}
	message, ok := interviewStatusMessages[newStatus]
	if !ok {
		message = fmt.Sprintf("Your interview status has been updated: %s", newStatus)
	}
	related := "/interviews/" + interview.ID
	n.persist(ctx, &domain.Notification{
		RecipientID: *interview.SeekerUserID,
		Title:       "Interview schedule updated",
		Message:     message,
		Type:        domain.NotificationTypeInterview,
		RelatedURL:  &related,
	})
}

func (n *notifier) ResumeCreated(ctx context.Context, resume *domain.Resume) {
	if resume.OwnerUserID == nil {
		return
	}
	title := "your CV"
	if resume.Title != nil {
		title = fmt.Sprintf("CV %q", *resume.Title)
	}
	related := "/resumes/" + resume.ID
	n.persist(ctx, &domain.Notification{
		RecipientID: *resume.OwnerUserID,
		Title:       "New CV created",
		Message:     fmt.Sprintf("%s has been created successfully.", title),
		Type:        domain.NotificationTypeGeneral,
		RelatedURL:  &related,
	})
}

func (n *notifier) ResumeActivated(ctx context.Context, resume *domain.Resume) {
	if resume.OwnerUserID == nil {
		return
	}
	title := "Your CV"
	if resume.Title != nil {
		title = fmt.Sprintf("CV %q", *resume.Title)
	}
	related := "/resumes/" + resume.ID
	n.persist(ctx, &domain.Notification{
		RecipientID: *resume.OwnerUserID,
		Title:       "CV activated",
		Message:     fmt.Sprintf("%s is now the active CV for your applications.", title),
		Type:        domain.NotificationTypeGeneral,
		RelatedURL:  &related,
	})
}
