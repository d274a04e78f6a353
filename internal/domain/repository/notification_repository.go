package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// NotificationRepository bandeja de notificaciones por usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead devuelve false si la notificación no existe o no pertenece al usuario.
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
