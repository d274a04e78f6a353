package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

var _ ports.Notifier = (*NotificationUseCase)(nil)

// NotificationUseCase entrega notificaciones a los administradores de la empresa y
// expone la bandeja de entrada del usuario actual.
type NotificationUseCase struct {
	txRunner ports.TxRunner
	events   *events.Dispatcher
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(txRunner ports.TxRunner, dispatcher *events.Dispatcher, metrics ports.Metrics, log *logger.Logger) *NotificationUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &NotificationUseCase{txRunner: txRunner, events: dispatcher, metrics: metrics, log: log.Component("notification")}
}

// Emit crea una notificación por cada ADMIN activo de la empresa, en su propia transacción.
// Best-effort: cualquier error se registra y se descarta.
func (uc *NotificationUseCase) Emit(ctx context.Context, in ports.NotificationInput) {
	ctx = context.WithoutCancel(ctx)
	now := time.Now()
	var created []*entity.Notification

	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		created = created[:0]
		admins, err := repos.Users.ListActiveByRole(ctx, in.CompanyID, entity.RoleAdmin)
		if err != nil {
			return err
		}
		for _, admin := range admins {
			n := &entity.Notification{
				ID:            uuid.New().String(),
				CompanyID:     in.CompanyID,
				UserID:        admin.ID,
				Type:          in.Type,
				Title:         in.Title,
				Message:       in.Message,
				ReferenceType: in.ReferenceType,
				ReferenceID:   in.ReferenceID,
				CreatedAt:     now,
			}
			if err := repos.Notifications.Create(ctx, n); err != nil {
				return err
			}
			created = append(created, n)
		}
		return nil
	})
	if err != nil {
		uc.metrics.NotificationFailed()
		uc.log.Error().Err(err).
			Str("company_id", in.CompanyID).
			Str("type", in.Type).
			Str("reference_id", in.ReferenceID).
			Msg("no se pudo emitir la notificación")
		return
	}

	uc.log.Debug().Str("type", in.Type).Int("recipients", len(created)).Msg("notificación emitida")
	for _, n := range created {
		uc.events.Publish(ctx, n.CompanyID, "", ports.EventNotificationCreated, n.UserID, toNotificationResponse(n))
	}
}

// LowStock notifica que el producto quedó en o por debajo de su punto de reorden.
func (uc *NotificationUseCase) LowStock(ctx context.Context, p *entity.Product) {
	if p == nil {
		return
	}
	uc.Emit(ctx, ports.NotificationInput{
		CompanyID: p.CompanyID,
		Type:      entity.NotificationLowStock,
		Title:     "Alerta de stock bajo: " + p.Name,
		Message: fmt.Sprintf("El producto \"%s\" (SKU: %s) está por debajo del punto de reorden. Actual: %d, punto de reorden: %d",
			p.Name, p.SKU, p.QuantityOnHand, p.ReorderPoint),
		ReferenceType: entity.ReferenceProduct,
		ReferenceID:   p.ID,
	})
}

// ListMine bandeja del usuario, más recientes primero.
func (uc *NotificationUseCase) ListMine(ctx context.Context, userID string, limit, offset int) (*dto.NotificationListResponse, error) {
	var list []*entity.Notification
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Notifications.ListByUser(ctx, userID, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{
		Items: toNotificationResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UnreadMine notificaciones sin leer del usuario.
func (uc *NotificationUseCase) UnreadMine(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	var list []*entity.Notification
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Notifications.ListUnread(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toNotificationResponses(list), nil
}

// UnreadCount cantidad de notificaciones sin leer.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		n, err = repos.Notifications.CountUnread(ctx, userID)
		return err
	})
	return n, err
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		ok, err := repos.Notifications.MarkRead(ctx, id, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundf("notificación no encontrada: %s", id)
		}
		return nil
	})
}

// MarkAllRead marca todas las notificaciones del usuario como leídas y devuelve cuántas cambiaron.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		n, err = repos.Notifications.MarkAllRead(ctx, userID)
		return err
	})
	return n, err
}

func toNotificationResponses(list []*entity.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:            n.ID,
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		ReferenceType: n.ReferenceType,
		ReferenceID:   n.ReferenceID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}
