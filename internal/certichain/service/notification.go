package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
)

type NotificationService struct {
	Store store.Store
}

func (s *NotificationService) List(ctx context.Context, owner domain.Identity, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.Store.Notifications().ListNotifications(ctx, owner.ID, unreadOnly, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, owner domain.Identity, id string) error {
	err := s.Store.Notifications().MarkNotificationRead(ctx, id, owner.ID)
	if errors.Is(err, store.ErrNotFound) {
		return newError(KindNotFound, nil, "notification not found")
	}
	return err
}
