package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock    = "LOW_STOCK"
	NotificationOrderStatus = "ORDER_STATUS"
	NotificationSystem      = "SYSTEM"
	NotificationInfo        = "INFO"
	NotificationWarning     = "WARNING"
	NotificationError       = "ERROR"
)

// Tipos de referencia usados en notificaciones.
const (
	ReferenceProduct       = "PRODUCT"
	ReferencePurchaseOrder = "PURCHASE_ORDER"
	ReferenceSalesOrder    = "SALES_ORDER"
)

// Notification mensaje para un usuario (bandeja de entrada).
type Notification struct {
	ID            string
	CompanyID     string
	UserID        string
	Type          string
	Title         string
	Message       string
	ReferenceType string
	ReferenceID   string
	IsRead        bool
	CreatedAt     time.Time
}
