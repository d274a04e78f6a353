package postgres

import (
	"context"
	"fmt"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var (
	_ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)
	_ repository.NotificationRepository    = (*NotificationRepo)(nil)
)

// StockAdjustmentRepo auditoría de ajustes: solo INSERT y SELECT.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

func (r *StockAdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, company_id, product_id, adjustment_type, quantity_before, quantity_after,
			quantity_change, reason, reference_number, adjusted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, a.ID, a.CompanyID, a.ProductID, a.Type, a.QuantityBefore, a.QuantityAfter,
		a.QuantityChange, a.Reason, nullIfEmpty(a.ReferenceNumber), a.AdjustedBy, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

func (r *StockAdjustmentRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.company_id, a.product_id, p.sku, a.adjustment_type, a.quantity_before, a.quantity_after,
			a.quantity_change, a.reason, COALESCE(a.reference_number, ''), a.adjusted_by, a.created_at
		FROM stock_adjustments a JOIN products p ON p.id = a.product_id
		WHERE a.product_id = $1
		ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`, productID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ProductID, &a.ProductSKU, &a.Type, &a.QuantityBefore,
			&a.QuantityAfter, &a.QuantityChange, &a.Reason, &a.ReferenceNumber, &a.AdjustedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *StockAdjustmentRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	if !isUUID(productID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_adjustments WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock adjustments: %w", err)
	}
	return n, nil
}

// NotificationRepo bandeja de notificaciones por usuario.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, company_id, user_id, type, title, message, COALESCE(reference_type, ''),
	COALESCE(reference_id::text, ''), is_read, created_at`

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, company_id, user_id, type, title, message, reference_type, reference_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, n.ID, n.CompanyID, n.UserID, n.Type, n.Title, n.Message,
		nullIfEmpty(n.ReferenceType), nullIfEmpty(n.ReferenceID), n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	return r.list(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limitOrAll(limit), offset)
}

func (r *NotificationRepo) ListUnread(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return r.list(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 AND NOT is_read
		ORDER BY created_at DESC`, userID)
}

func (r *NotificationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.ReferenceType,
			&n.ReferenceID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead el filtro por user_id impide marcar notificaciones ajenas.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}
