package ports

import (
	"context"
	"time"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// Tipos de evento publicados tras el commit.
const (
	EventStockAdjusted         = "stock.adjusted"
	EventSalesOrderCreated     = "sales_order.created"
	EventSalesOrderStatus      = "sales_order.status_changed"
	EventPurchaseOrderCreated  = "purchase_order.created"
	EventPurchaseOrderStatus   = "purchase_order.status_changed"
	EventPurchaseOrderReceived = "purchase_order.received"
	EventNotificationCreated   = "notification.created"
)

// Event sobre de un evento de dominio publicado al bus.
type Event struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	CompanyID string    `json:"company_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Key       string    `json:"-"` // clave de partición (ej. id del producto u orden)
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher publica eventos de dominio (Kafka en producción). Best-effort: el llamador solo registra el error.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// Notifier emite notificaciones en su propia transacción. Nunca devuelve error: los fallos se registran.
type Notifier interface {
	Emit(ctx context.Context, in NotificationInput)
	LowStock(ctx context.Context, product *entity.Product)
}

// NotificationInput datos de una notificación a emitir.
type NotificationInput struct {
	CompanyID     string
	Type          string
	Title         string
	Message       string
	ReferenceType string
	ReferenceID   string
}

// Metrics contadores de negocio (Prometheus en producción).
type Metrics interface {
	StockAdjusted(adjType string)
	StockConflict(operation string)
	SalesOrderCreated()
	SalesOrderCancelled()
	PurchaseOrderReceived(status string)
	AutoReorderOrders(n int)
	NotificationFailed()
	EventPublishFailed(eventType string)
}

// NopMetrics implementación vacía de Metrics (tests, métricas deshabilitadas).
type NopMetrics struct{}

func (NopMetrics) StockAdjusted(string)         {}
func (NopMetrics) StockConflict(string)         {}
func (NopMetrics) SalesOrderCreated()           {}
func (NopMetrics) SalesOrderCancelled()         {}
func (NopMetrics) PurchaseOrderReceived(string) {}
func (NopMetrics) AutoReorderOrders(int)        {}
func (NopMetrics) NotificationFailed()          {}
func (NopMetrics) EventPublishFailed(string)    {}
