package purchasing

import (
	"context"
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

// PendingStatuses estados de una orden de compra que aún espera mercancía o aprobación.
var PendingStatuses = []string{
	entity.PurchaseStatusPending,
	entity.PurchaseStatusApproved,
	entity.PurchaseStatusOrdered,
	entity.PurchaseStatusPartiallyReceived,
}

// PurchaseOrderUseCase crea órdenes de compra, gestiona su estado y registra la recepción de mercancía.
// La recepción incrementa stock y avanza el estado en una sola transacción.
type PurchaseOrderUseCase struct {
	txRunner ports.TxRunner
	notifier ports.Notifier
	events   *events.Dispatcher
	renderer DocumentRenderer
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner ports.TxRunner,
	notifier ports.Notifier,
	dispatcher *events.Dispatcher,
	renderer DocumentRenderer,
	metrics ports.Metrics,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseOrderUseCase{
		txRunner: txRunner,
		notifier: notifier,
		events:   dispatcher,
		renderer: renderer,
		metrics:  metrics,
		log:      log.Component("purchasing"),
	}
}

// Create registra una orden en DRAFT. No afecta stock.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		OrderNumber:  inventory.OrderNumber(inventory.PurchaseOrderPrefix, now),
		SupplierID:   in.SupplierID,
		OrderDate:    now,
		ExpectedDate: in.ExpectedDate,
		Status:       entity.PurchaseStatusDraft,
		TaxAmount:    in.TaxAmount,
		ShippingCost: in.ShippingCost,
		Notes:        in.Notes,
		CreatedBy:    userID,
		UpdatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		supplier, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NotFoundf("proveedor no encontrado: %s", in.SupplierID)
		}
		if supplier.CompanyID != companyID {
			return domain.ErrForbidden
		}
		po.SupplierName = supplier.Name

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
			po.Items = append(po.Items, &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				ProductID:       p.ID,
				ProductSKU:      p.SKU,
				QuantityOrdered: line.Quantity,
				UnitCost:        line.UnitCost,
				LineTotal:       inventory.PurchaseLineTotal(line.UnitCost, line.Quantity),
			})
		}
		ApplyTotals(po)
		return repos.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	resp := ToPurchaseOrderResponse(po)
	uc.events.Publish(ctx, companyID, userID, ports.EventPurchaseOrderCreated, po.ID, resp)
	return resp, nil
}

func validateCreate(in dto.CreatePurchaseOrderRequest) error {
	if in.SupplierID == "" {
		return domain.Invalidf("supplier_id es obligatorio")
	}
	if len(in.Items) == 0 {
		return domain.Invalidf("la orden debe tener al menos una línea")
	}
	if in.TaxAmount.IsNegative() || in.ShippingCost.IsNegative() {
		return domain.Invalidf("impuesto y envío no pueden ser negativos")
	}
	if !inventory.HasMoneyScale(in.TaxAmount) || !inventory.HasMoneyScale(in.ShippingCost) {
		return domain.Invalidf("impuesto y envío admiten como máximo 2 decimales")
	}
	for i, line := range in.Items {
		if line.ProductID == "" {
			return domain.Invalidf("línea %d: product_id es obligatorio", i+1)
		}
		if line.Quantity < 1 {
			return domain.Invalidf("línea %d: la cantidad debe ser al menos 1", i+1)
		}
		if line.UnitCost.IsNegative() {
			return domain.Invalidf("línea %d: el costo unitario no puede ser negativo", i+1)
		}
		if !inventory.HasMoneyScale(line.UnitCost) {
			return domain.Invalidf("línea %d: el costo unitario admite como máximo 2 decimales", i+1)
		}
	}
	return nil
}

// ApplyTotals recalcula Subtotal y TotalAmount a partir de las líneas.
func ApplyTotals(po *entity.PurchaseOrder) {
	subtotal := decimal.Zero
	for _, it := range po.Items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	po.Subtotal = subtotal
	po.TotalAmount = inventory.PurchaseTotal(subtotal, po.TaxAmount, po.ShippingCost)
}

// UpdateStatus cambia el estado de la orden. CANCELLED y RECEIVED son terminales.
// RECEIVED y PARTIALLY_RECEIVED solo se alcanzan vía Receive.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, companyID, userID, id, status string) (*dto.PurchaseOrderResponse, error) {
	if !entity.ValidPurchaseStatus(status) {
		return nil, domain.Invalidf("estado inválido: %q", status)
	}
	if status == entity.PurchaseStatusReceived || status == entity.PurchaseStatusPartiallyReceived {
		return nil, domain.Invalidf("el estado %s se asigna al recibir mercancía", status)
	}

	var (
		po       *entity.PurchaseOrder
		previous string
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		if po, err = lockedOrder(ctx, repos, companyID, id); err != nil {
			return err
		}
		if po.Status == entity.PurchaseStatusCancelled || po.Status == entity.PurchaseStatusReceived {
			return domain.InvalidTransitionf("la orden %s está en estado %s y no admite cambios", po.OrderNumber, po.Status)
		}
		previous = po.Status
		po.Status = status
		if status == entity.PurchaseStatusApproved {
			po.ApprovedBy = userID
		}
		po.UpdatedBy = userID
		po.UpdatedAt = time.Now()
		return repos.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", po.ID).
		Str("from", previous).
		Str("to", status).
		Str("user_id", userID).
		Msg("estado de orden de compra actualizado")
	resp := ToPurchaseOrderResponse(po)
	uc.events.Publish(ctx, companyID, userID, ports.EventPurchaseOrderStatus, po.ID, resp)
	return resp, nil
}

// Receive registra mercancía recibida. Todo o nada: si una línea falla no se aplica ninguna.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, companyID, userID, id string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalidf("debe indicar al menos una línea a recibir")
	}

	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		if po, err = lockedOrder(ctx, repos, companyID, id); err != nil {
			return err
		}
		if po.Status != entity.PurchaseStatusOrdered && po.Status != entity.PurchaseStatusPartiallyReceived {
			return domain.InvalidTransitionf("la orden %s debe estar en ORDERED o PARTIALLY_RECEIVED para recibir (actual: %s)", po.OrderNumber, po.Status)
		}

		byID := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
		for _, it := range po.Items {
			byID[it.ID] = it
		}
		for _, line := range in.Items {
			item, ok := byID[line.ItemID]
			if !ok {
				return domain.NotFoundf("línea de orden no encontrada: %s", line.ItemID)
			}
			if line.Quantity <= 0 {
				return domain.Invalidf("la cantidad recibida debe ser mayor que cero")
			}
			if item.QuantityReceived+line.Quantity > item.QuantityOrdered {
				return domain.Conflictf("la cantidad recibida supera la pedida para el SKU %s (pedido %d, recibido %d, nuevo %d)",
					item.ProductSKU, item.QuantityOrdered, item.QuantityReceived, line.Quantity)
			}
			item.QuantityReceived += line.Quantity
			if err := repos.PurchaseOrders.UpdateItemReceived(ctx, item.ID, item.QuantityReceived); err != nil {
				return err
			}
			n, err := repos.Products.IncreaseStock(ctx, item.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if n == 0 {
				return domain.NotFoundf("producto no encontrado: %s", item.ProductID)
			}
		}

		now := time.Now()
		if po.FullyReceived() {
			po.Status = entity.PurchaseStatusReceived
			po.ReceivedDate = &now
		} else {
			po.Status = entity.PurchaseStatusPartiallyReceived
		}
		po.UpdatedBy = userID
		po.UpdatedAt = now
		return repos.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PurchaseOrderReceived(po.Status)
	uc.log.Info().
		Str("order_id", po.ID).
		Str("status", po.Status).
		Int("lines", len(in.Items)).
		Str("user_id", userID).
		Msg("mercancía recibida")

	resp := ToPurchaseOrderResponse(po)
	uc.events.Publish(ctx, companyID, userID, ports.EventPurchaseOrderReceived, po.ID, resp)
	if po.Status == entity.PurchaseStatusReceived && uc.notifier != nil {
		uc.notifier.Emit(ctx, ports.NotificationInput{
			CompanyID:     companyID,
			Type:          entity.NotificationOrderStatus,
			Title:         "Orden de compra recibida: " + po.OrderNumber,
			Message:       fmt.Sprintf("La orden de compra %s fue recibida en su totalidad.", po.OrderNumber),
			ReferenceType: entity.ReferencePurchaseOrder,
			ReferenceID:   po.ID,
		})
	}
	return resp, nil
}

// Get obtiene una orden de la empresa.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		po, err = ownedOrder(ctx, repos, companyID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// List lista órdenes de la empresa, más recientes primero.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	var (
		list  []*entity.PurchaseOrder
		total int
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		if list, err = repos.PurchaseOrders.ListByCompany(ctx, companyID, limit, offset); err != nil {
			return err
		}
		total, err = repos.PurchaseOrders.CountByCompany(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseOrderListResponse{
		Items: toResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Pending órdenes en PENDING, APPROVED, ORDERED o PARTIALLY_RECEIVED.
func (uc *PurchaseOrderUseCase) Pending(ctx context.Context, companyID string) ([]dto.PurchaseOrderResponse, error) {
	var list []*entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.PurchaseOrders.ListByStatuses(ctx, companyID, PendingStatuses)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// PDF genera el documento de la orden para el proveedor.
func (uc *PurchaseOrderUseCase) PDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	var (
		po       *entity.PurchaseOrder
		supplier *entity.Supplier
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		if po, err = ownedOrder(ctx, repos, companyID, id); err != nil {
			return err
		}
		supplier, err = repos.Suppliers.GetByID(ctx, po.SupplierID)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	if supplier == nil {
		supplier = &entity.Supplier{ID: po.SupplierID, Name: po.SupplierName}
	}
	data, err := uc.renderer.PurchaseOrder(po, supplier)
	if err != nil {
		return nil, "", fmt.Errorf("render purchase order: %w", err)
	}
	return data, po.OrderNumber + ".pdf", nil
}

func ownedOrder(ctx context.Context, repos ports.Repositories, companyID, id string) (*entity.PurchaseOrder, error) {
	po, err := repos.PurchaseOrders.GetByID(ctx, id)
	return checkOwner(po, err, companyID, id)
}

func lockedOrder(ctx context.Context, repos ports.Repositories, companyID, id string) (*entity.PurchaseOrder, error) {
	po, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
	return checkOwner(po, err, companyID, id)
}

func checkOwner(po *entity.PurchaseOrder, err error, companyID, id string) (*entity.PurchaseOrder, error) {
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.NotFoundf("orden de compra no encontrada: %s", id)
	}
	if po.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return po, nil
}

func toResponses(list []*entity.PurchaseOrder) []dto.PurchaseOrderResponse {
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, *ToPurchaseOrderResponse(po))
	}
	return out
}

// ToPurchaseOrderResponse mapea la entidad (con líneas) a su DTO.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if po == nil {
		return nil
	}
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductSKU:       it.ProductSKU,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			LineTotal:        it.LineTotal,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           po.ID,
		OrderNumber:  po.OrderNumber,
		SupplierID:   po.SupplierID,
		SupplierName: po.SupplierName,
		OrderDate:    po.OrderDate,
		ExpectedDate: po.ExpectedDate,
		ReceivedDate: po.ReceivedDate,
		Status:       po.Status,
		Subtotal:     po.Subtotal,
		TaxAmount:    po.TaxAmount,
		ShippingCost: po.ShippingCost,
		TotalAmount:  po.TotalAmount,
		Notes:        po.Notes,
		Items:        items,
		CreatedBy:    po.CreatedBy,
		ApprovedBy:   po.ApprovedBy,
		UpdatedBy:    po.UpdatedBy,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}
