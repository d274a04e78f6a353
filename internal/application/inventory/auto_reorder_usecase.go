package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/application/purchasing"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

const autoReorderNote = "Generada por reorden automático"

// AutoReorderUseCase abre órdenes de compra en ORDERED para los productos con reorden automático
// que están en o por debajo de su punto de reorden. Una orden por proveedor, una línea por producto.
// No deduplica contra órdenes abiertas: dos corridas seguidas con stock bajo generan dos órdenes.
type AutoReorderUseCase struct {
	txRunner ports.TxRunner
	notifier ports.Notifier
	events   *events.Dispatcher
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewAutoReorderUseCase construye el evaluador.
func NewAutoReorderUseCase(
	txRunner ports.TxRunner,
	notifier ports.Notifier,
	dispatcher *events.Dispatcher,
	metrics ports.Metrics,
	log *logger.Logger,
) *AutoReorderUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AutoReorderUseCase{
		txRunner: txRunner,
		notifier: notifier,
		events:   dispatcher,
		metrics:  metrics,
		log:      log.Component("auto_reorder"),
	}
}

// Run evalúa los productos de una empresa y crea las órdenes en una sola transacción.
// userID vacío cuando lo dispara el scheduler.
func (uc *AutoReorderUseCase) Run(ctx context.Context, companyID, userID string) (*dto.AutoReorderResult, error) {
	result := &dto.AutoReorderResult{
		CompanyID:       companyID,
		OrdersCreated:   []dto.PurchaseOrderResponse{},
		SkippedProducts: []dto.SkippedProductDTO{},
	}
	var orders []*entity.PurchaseOrder

	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		orders = orders[:0]
		result.SkippedProducts = result.SkippedProducts[:0]

		candidates, err := repos.Products.ListAutoReorderCandidates(ctx, companyID)
		if err != nil {
			return err
		}

		now := time.Now()
		bySupplier := make(map[string]*entity.PurchaseOrder)
		leadDays := make(map[string]int)
		for _, p := range candidates {
			if p.ReorderQuantity <= 0 {
				result.SkippedProducts = append(result.SkippedProducts, skipped(p, "cantidad de reorden no configurada"))
				continue
			}
			link, err := repos.Suppliers.PreferredForProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			if link == nil {
				result.SkippedProducts = append(result.SkippedProducts, skipped(p, "sin proveedor vinculado"))
				continue
			}

			po, ok := bySupplier[link.SupplierID]
			if !ok {
				supplier, err := repos.Suppliers.GetByID(ctx, link.SupplierID)
				if err != nil {
					return err
				}
				if supplier == nil || !supplier.IsActive || supplier.CompanyID != companyID {
					result.SkippedProducts = append(result.SkippedProducts, skipped(p, "proveedor inactivo o inexistente"))
					continue
				}
				po = &entity.PurchaseOrder{
					ID:           uuid.New().String(),
					CompanyID:    companyID,
					OrderNumber:  inventory.OrderNumber(inventory.PurchaseOrderPrefix, now),
					SupplierID:   supplier.ID,
					SupplierName: supplier.Name,
					OrderDate:    now,
					Status:       entity.PurchaseStatusOrdered,
					Notes:        autoReorderNote,
					CreatedBy:    userID,
					UpdatedBy:    userID,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				bySupplier[supplier.ID] = po
				orders = append(orders, po)
			}

			cost, _ := unitCost(p, link)
			po.Items = append(po.Items, &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				ProductID:       p.ID,
				ProductSKU:      p.SKU,
				QuantityOrdered: p.ReorderQuantity,
				UnitCost:        cost,
				LineTotal:       inventory.PurchaseLineTotal(cost, p.ReorderQuantity),
			})
			if link.LeadTimeDays > leadDays[po.ID] {
				leadDays[po.ID] = link.LeadTimeDays
			}
		}

		for _, po := range orders {
			if days := leadDays[po.ID]; days > 0 {
				expected := now.AddDate(0, 0, days)
				po.ExpectedDate = &expected
			}
			purchasing.ApplyTotals(po)
			if err := repos.PurchaseOrders.Create(ctx, po); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, po := range orders {
		resp := purchasing.ToPurchaseOrderResponse(po)
		result.OrdersCreated = append(result.OrdersCreated, *resp)
		uc.events.Publish(ctx, companyID, userID, ports.EventPurchaseOrderCreated, po.ID, resp)
	}
	uc.metrics.AutoReorderOrders(len(orders))
	uc.log.Info().
		Str("company_id", companyID).
		Int("orders", len(orders)).
		Int("skipped", len(result.SkippedProducts)).
		Msg("reorden automático ejecutado")

	if len(orders) > 0 && uc.notifier != nil {
		uc.notifier.Emit(ctx, ports.NotificationInput{
			CompanyID: companyID,
			Type:      entity.NotificationSystem,
			Title:     "Reorden automático",
			Message:   fmt.Sprintf("Se generaron %d órdenes de compra en estado ORDERED.", len(orders)),
		})
	}
	return result, nil
}

// RunAllCompanies ejecuta Run para cada empresa activa. Un fallo en una empresa no detiene a las demás.
func (uc *AutoReorderUseCase) RunAllCompanies(ctx context.Context) (int, error) {
	var companies []*entity.Company
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		companies, err = repos.Companies.ListActive(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("list companies: %w", err)
	}

	created := 0
	for _, c := range companies {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}
		res, err := uc.Run(ctx, c.ID, "")
		if err != nil {
			uc.log.Error().Err(err).Str("company_id", c.ID).Msg("reorden automático falló")
			continue
		}
		created += len(res.OrdersCreated)
	}
	return created, nil
}

func skipped(p *entity.Product, reason string) dto.SkippedProductDTO {
	return dto.SkippedProductDTO{ProductID: p.ID, SKU: p.SKU, Reason: reason}
}
