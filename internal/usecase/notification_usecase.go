package usecase

import (
	"context"
	"errors"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

// notificationUsecase is the read side of notifications. Records are only
// ever visible to their recipient.
type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

func (uc *notificationUsecase) ListMine(ctx context.Context, caller *domain.User, page, pageSize int) ([]domain.Notification, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	notifications, total, err := uc.notificationRepo.ListByRecipient(ctx, caller.ID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return notifications, total, nil
}

func (uc *notificationUsecase) UnreadCount(ctx context.Context, caller *domain.User) (int64, error) {
	count, err := uc.notificationRepo.UnreadCount(ctx, caller.ID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, caller *domain.User, notificationID string) error {
	err := uc.notificationRepo.MarkRead(ctx, notificationID, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
