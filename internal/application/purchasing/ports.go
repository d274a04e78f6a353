package purchasing

import "github.com/malikaashish/Inventory-Management-System/internal/domain/entity"

// DocumentRenderer genera el documento PDF de una orden de compra para enviar al proveedor.
type DocumentRenderer interface {
	PurchaseOrder(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}
