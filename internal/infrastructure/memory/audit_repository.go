package memory

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var (
	_ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)
	_ repository.NotificationRepository    = (*NotificationRepo)(nil)
)

// StockAdjustmentRepo ajustes en memoria (solo inserción).
type StockAdjustmentRepo struct{ base }

func (r *StockAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	defer r.guard()()
	st := r.state()
	cp := *a
	st.adjustments = append(st.adjustments, &cp)
	return nil
}

func (r *StockAdjustmentRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	defer r.guard()()
	st := r.state()
	var all []*entity.StockAdjustment
	for i := len(st.adjustments) - 1; i >= 0; i-- {
		if a := st.adjustments[i]; a.ProductID == productID {
			cp := *a
			all = append(all, &cp)
		}
	}
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *StockAdjustmentRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	defer r.guard()()
	n := 0
	for _, a := range r.state().adjustments {
		if a.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// NotificationRepo bandeja de notificaciones en memoria.
type NotificationRepo struct{ base }

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	defer r.guard()()
	st := r.state()
	cp := *n
	st.notifications = append(st.notifications, &cp)
	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	defer r.guard()()
	all := r.newestFirst(func(n *entity.Notification) bool { return n.UserID == userID })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *NotificationRepo) ListUnread(_ context.Context, userID string) ([]*entity.Notification, error) {
	defer r.guard()()
	return r.newestFirst(func(n *entity.Notification) bool { return n.UserID == userID && !n.IsRead }), nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	defer r.guard()()
	return len(r.newestFirst(func(n *entity.Notification) bool { return n.UserID == userID && !n.IsRead })), nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id, userID string) (bool, error) {
	defer r.guard()()
	for _, n := range r.state().notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	defer r.guard()()
	var changed int64
	for _, n := range r.state().notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (r *NotificationRepo) newestFirst(keep func(*entity.Notification) bool) []*entity.Notification {
	list := r.state().notifications
	var out []*entity.Notification
	for i := len(list) - 1; i >= 0; i-- {
		if keep(list[i]) {
			cp := *list[i]
			out = append(out, &cp)
		}
	}
	return out
}
