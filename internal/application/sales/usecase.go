package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// RecentLimit cantidad de órdenes devueltas por Recent.
const RecentLimit = 10

var hundred = decimal.NewFromInt(100)

// SalesOrderUseCase convierte pedidos en descuentos de stock y revierte el stock al cancelar.
// Cada línea descuenta con un UPDATE condicional; si alguna falla, la orden completa se revierte.
type SalesOrderUseCase struct {
	txRunner ports.TxRunner
	notifier ports.Notifier
	events   *events.Dispatcher
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(
	txRunner ports.TxRunner,
	notifier ports.Notifier,
	dispatcher *events.Dispatcher,
	metrics ports.Metrics,
	log *logger.Logger,
) *SalesOrderUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SalesOrderUseCase{
		txRunner: txRunner,
		notifier: notifier,
		events:   dispatcher,
		metrics:  metrics,
		log:      log.Component("sales"),
		now:      time.Now,
	}
}

// Create registra la orden en PENDING descontando el stock de cada línea.
func (uc *SalesOrderUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	order := &entity.SalesOrder{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		OrderNumber:     inventory.OrderNumber(inventory.SalesOrderPrefix, now),
		CustomerID:      in.CustomerID,
		OrderDate:       now,
		Status:          entity.SalesStatusPending,
		TaxAmount:       in.TaxAmount,
		DiscountAmount:  in.DiscountAmount,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
		CreatedBy:       userID,
		UpdatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var lowStock []*entity.Product
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		order.Items = order.Items[:0]
		lowStock = lowStock[:0]
		if in.CustomerID != "" {
			c, err := repos.Customers.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.NotFoundf("cliente no encontrado: %s", in.CustomerID)
			}
			if c.CompanyID != companyID {
				return domain.ErrForbidden
			}
		}

		subtotal := decimal.Zero
		low := make(map[string]*entity.Product)
		for _, line := range in.Items {
			p, err := repos.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NotFoundf("producto no encontrado: %s", line.ProductID)
			}
			if p.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if p.IsExpired(now) {
				return domain.Invalidf("no se puede vender el producto vencido %s", p.SKU)
			}

			n, err := repos.Products.DecreaseStock(ctx, p.ID, line.Quantity)
			if err != nil {
				return err
			}
			if n == 0 {
				return domain.InsufficientStockf("stock insuficiente para el SKU %s", p.SKU)
			}

			price := p.UnitPrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			item := &entity.SalesOrderItem{
				ID:              uuid.New().String(),
				SalesOrderID:    order.ID,
				ProductID:       p.ID,
				ProductSKU:      p.SKU,
				Quantity:        line.Quantity,
				UnitPrice:       price,
				DiscountPercent: line.DiscountPercent,
				LineTotal:       inventory.SalesLineTotal(price, line.Quantity, line.DiscountPercent),
			}
			order.Items = append(order.Items, item)
			subtotal = subtotal.Add(item.LineTotal)

			refreshed, err := repos.Products.GetByID(ctx, p.ID)
			if err != nil {
				return err
			}
			if refreshed != nil && refreshed.IsLowStock() {
				low[p.ID] = refreshed
			} else {
				delete(low, p.ID)
			}
		}

		order.Subtotal = subtotal
		order.TotalAmount = inventory.SalesTotal(subtotal, order.TaxAmount, order.DiscountAmount)
		for _, p := range low {
			lowStock = append(lowStock, p)
		}
		return repos.SalesOrders.Create(ctx, order)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.metrics.StockConflict("sale")
		}
		return nil, err
	}

	uc.metrics.SalesOrderCreated()
	uc.log.Info().
		Str("company_id", companyID).
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("lines", len(order.Items)).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("orden de venta creada")

	resp := ToSalesOrderResponse(order)
	uc.events.Publish(ctx, companyID, userID, ports.EventSalesOrderCreated, order.ID, resp)
	if uc.notifier != nil {
		for _, p := range lowStock {
			uc.notifier.LowStock(ctx, p)
		}
	}
	return resp, nil
}

func validateCreate(in dto.CreateSalesOrderRequest) error {
	if len(in.Items) == 0 {
		return domain.Invalidf("la orden debe tener al menos una línea")
	}
	if in.TaxAmount.IsNegative() || in.DiscountAmount.IsNegative() {
		return domain.Invalidf("impuesto y descuento no pueden ser negativos")
	}
	if !inventory.HasMoneyScale(in.TaxAmount) || !inventory.HasMoneyScale(in.DiscountAmount) {
		return domain.Invalidf("impuesto y descuento admiten como máximo 2 decimales")
	}
	for i, line := range in.Items {
		if line.ProductID == "" {
			return domain.Invalidf("línea %d: product_id es obligatorio", i+1)
		}
		if line.Quantity < 1 {
			return domain.Invalidf("línea %d: la cantidad debe ser al menos 1", i+1)
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return domain.Invalidf("línea %d: el precio unitario no puede ser negativo", i+1)
		}
		if line.UnitPrice != nil && !inventory.HasMoneyScale(*line.UnitPrice) {
			return domain.Invalidf("línea %d: el precio unitario admite como máximo 2 decimales", i+1)
		}
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
			return domain.Invalidf("línea %d: el descuento debe estar entre 0 y 100", i+1)
		}
		if !inventory.HasMoneyScale(line.DiscountPercent) {
			return domain.Invalidf("línea %d: el descuento admite como máximo 2 decimales", i+1)
		}
	}
	return nil
}

// UpdateStatus cambia el estado de la orden. CANCELLED es terminal; COMPLETED solo admite COMPLETED.
// Al cancelar se reintegra al stock la cantidad completa de cada línea.
func (uc *SalesOrderUseCase) UpdateStatus(ctx context.Context, companyID, userID, id, status string) (*dto.SalesOrderResponse, error) {
	if !entity.ValidSalesStatus(status) {
		return nil, domain.Invalidf("estado inválido: %q", status)
	}

	var (
		order    *entity.SalesOrder
		previous string
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		o, err := repos.SalesOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFoundf("orden de venta no encontrada: %s", id)
		}
		if o.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if o.Status == entity.SalesStatusCancelled {
			return domain.InvalidTransitionf("la orden %s está cancelada", o.OrderNumber)
		}
		if o.Status == entity.SalesStatusCompleted && status != entity.SalesStatusCompleted {
			return domain.InvalidTransitionf("la orden %s ya está completada", o.OrderNumber)
		}

		if status == entity.SalesStatusCancelled {
			for _, it := range o.Items {
				if _, err := repos.Products.IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return fmt.Errorf("restock %s: %w", it.ProductSKU, err)
				}
			}
		}
		previous = o.Status
		o.Status = status
		o.UpdatedBy = userID
		o.UpdatedAt = uc.now()
		if err := repos.SalesOrders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == entity.SalesStatusCancelled && previous != entity.SalesStatusCancelled {
		uc.metrics.SalesOrderCancelled()
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("from", previous).
		Str("to", status).
		Str("user_id", userID).
		Msg("estado de orden de venta actualizado")

	resp := ToSalesOrderResponse(order)
	uc.events.Publish(ctx, companyID, userID, ports.EventSalesOrderStatus, order.ID, resp)
	if status == entity.SalesStatusCancelled && uc.notifier != nil {
		uc.notifier.Emit(ctx, ports.NotificationInput{
			CompanyID:     companyID,
			Type:          entity.NotificationOrderStatus,
			Title:         "Orden de venta cancelada: " + order.OrderNumber,
			Message:       fmt.Sprintf("La orden de venta %s fue cancelada y su stock reintegrado.", order.OrderNumber),
			ReferenceType: entity.ReferenceSalesOrder,
			ReferenceID:   order.ID,
		})
	}
	return resp, nil
}

// Get obtiene una orden de la empresa.
func (uc *SalesOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.SalesOrderResponse, error) {
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		o, err := repos.SalesOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFoundf("orden de venta no encontrada: %s", id)
		}
		if o.CompanyID != companyID {
			return domain.ErrForbidden
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponse(order), nil
}

// List lista órdenes de la empresa, más recientes primero.
func (uc *SalesOrderUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SalesOrderListResponse, error) {
	var (
		list  []*entity.SalesOrder
		total int
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		if list, err = repos.SalesOrders.ListByCompany(ctx, companyID, limit, offset); err != nil {
			return err
		}
		total, err = repos.SalesOrders.CountByCompany(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.SalesOrderListResponse{
		Items: toResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Recent las últimas RecentLimit órdenes.
func (uc *SalesOrderUseCase) Recent(ctx context.Context, companyID string) ([]dto.SalesOrderResponse, error) {
	var list []*entity.SalesOrder
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.SalesOrders.ListByCompany(ctx, companyID, RecentLimit, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

func toResponses(list []*entity.SalesOrder) []dto.SalesOrderResponse {
	out := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToSalesOrderResponse(o))
	}
	return out
}

// ToSalesOrderResponse mapea la entidad (con líneas) a su DTO.
func ToSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.SalesOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.SalesOrderItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductSKU:      it.ProductSKU,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       it.LineTotal,
		})
	}
	return &dto.SalesOrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		OrderDate:       o.OrderDate,
		Status:          o.Status,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Items:           items,
		CreatedBy:       o.CreatedBy,
		UpdatedBy:       o.UpdatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
