package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
)

// ReplenishmentUseCase lista los productos en o por debajo de su punto de reorden con la compra sugerida.
// Solo lectura: no crea órdenes (eso lo hace AutoReorderUseCase).
type ReplenishmentUseCase struct {
	txRunner ports.TxRunner
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(txRunner ports.TxRunner) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{txRunner: txRunner}
}

// LowStockReport devuelve los productos con stock bajo ordenados por urgencia:
// primero el menor porcentaje de stock respecto al punto de reorden, luego el mayor déficit absoluto.
func (uc *ReplenishmentUseCase) LowStockReport(ctx context.Context, companyID string) ([]dto.LowStockItemDTO, error) {
	var items []dto.LowStockItemDTO
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		products, err := repos.Products.ListLowStock(ctx, companyID)
		if err != nil {
			return err
		}
		items = make([]dto.LowStockItemDTO, 0, len(products))
		for _, p := range products {
			link, err := repos.Suppliers.PreferredForProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			cost, supplierID := unitCost(p, link)
			items = append(items, dto.LowStockItemDTO{
				ProductID:          p.ID,
				SKU:                p.SKU,
				ProductName:        p.Name,
				CurrentStock:       p.QuantityOnHand,
				ReorderPoint:       p.ReorderPoint,
				ReorderQuantity:    p.ReorderQuantity,
				AutoReorderEnabled: p.AutoReorderEnabled,
				UnitCost:           cost,
				EstimatedOrderCost: inventory.PurchaseLineTotal(cost, p.ReorderQuantity),
				SupplierID:         supplierID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := coverage(items[i]), coverage(items[j])
		if !ri.Equal(rj) {
			return ri.LessThan(rj)
		}
		return items[i].ReorderPoint-items[i].CurrentStock > items[j].ReorderPoint-items[j].CurrentStock
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

// coverage stock actual / punto de reorden (0 cuando el punto de reorden es 0).
func coverage(it dto.LowStockItemDTO) decimal.Decimal {
	if it.ReorderPoint <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(it.CurrentStock)).Div(decimal.NewFromInt(int64(it.ReorderPoint)))
}

// unitCost precio del proveedor vinculado o, si no lo tiene, el costo del producto.
func unitCost(p *entity.Product, link *entity.ProductSupplier) (decimal.Decimal, string) {
	if link == nil {
		return p.CostPrice, ""
	}
	if link.SupplierPrice != nil {
		return *link.SupplierPrice, link.SupplierID
	}
	return p.CostPrice, link.SupplierID
}
