package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

const (
	maxReasonLen    = 500
	maxReferenceLen = 100
)

// StockAdjustmentUseCase aplica ajustes manuales de stock (INCREASE, DECREASE, CORRECTION)
// con bloqueo de fila (SELECT FOR UPDATE) y registro de auditoría en la misma transacción.
type StockAdjustmentUseCase struct {
	txRunner ports.TxRunner
	notifier ports.Notifier
	events   *events.Dispatcher
	exporter AdjustmentExporter
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewStockAdjustmentUseCase construye el caso de uso.
func NewStockAdjustmentUseCase(
	txRunner ports.TxRunner,
	notifier ports.Notifier,
	dispatcher *events.Dispatcher,
	exporter AdjustmentExporter,
	metrics ports.Metrics,
	log *logger.Logger,
) *StockAdjustmentUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockAdjustmentUseCase{
		txRunner: txRunner,
		notifier: notifier,
		events:   dispatcher,
		exporter: exporter,
		metrics:  metrics,
		log:      log.Component("stock_adjustment"),
	}
}

// Adjust bloquea el producto, calcula el nuevo stock, lo persiste y registra el ajuste.
// Si el stock resultante queda bajo, la notificación se emite después del commit.
func (uc *StockAdjustmentUseCase) Adjust(ctx context.Context, companyID, userID string, in dto.StockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	reference := strings.TrimSpace(in.ReferenceNumber)
	switch {
	case in.ProductID == "":
		return nil, domain.Invalidf("product_id es obligatorio")
	case in.Quantity == nil:
		return nil, domain.Invalidf("quantity es obligatorio")
	case reason == "":
		return nil, domain.Invalidf("reason es obligatorio")
	case utf8.RuneCountInString(reason) > maxReasonLen:
		return nil, domain.Invalidf("reason no puede superar %d caracteres", maxReasonLen)
	case utf8.RuneCountInString(reference) > maxReferenceLen:
		return nil, domain.Invalidf("reference_number no puede superar %d caracteres", maxReferenceLen)
	}

	var (
		adj     *entity.StockAdjustment
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		p, err := repos.Products.LockForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFoundf("producto no encontrado: %s", in.ProductID)
		}
		if p.CompanyID != companyID {
			return domain.ErrForbidden
		}

		after, change, err := inventory.ComputeAdjustment(in.AdjustmentType, p.QuantityOnHand, *in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Products.SetQuantityOnHand(ctx, p.ID, after); err != nil {
			return err
		}

		adj = &entity.StockAdjustment{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			ProductID:       p.ID,
			ProductSKU:      p.SKU,
			Type:            in.AdjustmentType,
			QuantityBefore:  p.QuantityOnHand,
			QuantityAfter:   after,
			QuantityChange:  change,
			Reason:          reason,
			ReferenceNumber: reference,
			AdjustedBy:      userID,
			CreatedAt:       time.Now(),
		}
		if err := repos.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		p.QuantityOnHand = after
		product = p
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.metrics.StockConflict("adjust")
		}
		return nil, err
	}

	uc.metrics.StockAdjusted(adj.Type)
	uc.log.Info().
		Str("company_id", companyID).
		Str("product_id", adj.ProductID).
		Str("type", adj.Type).
		Int("before", adj.QuantityBefore).
		Int("after", adj.QuantityAfter).
		Str("user_id", userID).
		Msg("ajuste de stock registrado")

	resp := toAdjustmentResponse(adj)
	uc.events.Publish(ctx, companyID, userID, ports.EventStockAdjusted, adj.ProductID, resp)
	if product.IsLowStock() && uc.notifier != nil {
		uc.notifier.LowStock(ctx, product)
	}
	return &resp, nil
}

// History devuelve los ajustes del producto, del más reciente al más antiguo, con el total.
func (uc *StockAdjustmentUseCase) History(ctx context.Context, companyID, productID string, limit, offset int) (*dto.StockAdjustmentListResponse, error) {
	var (
		list  []*entity.StockAdjustment
		total int
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		if _, err := ownedProduct(ctx, repos, companyID, productID); err != nil {
			return err
		}
		var err error
		if list, err = repos.Adjustments.ListByProduct(ctx, productID, limit, offset); err != nil {
			return err
		}
		total, err = repos.Adjustments.CountByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockAdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAdjustmentResponse(a))
	}
	return &dto.StockAdjustmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// ExportHistory genera el libro XLSX con el historial completo del producto.
func (uc *StockAdjustmentUseCase) ExportHistory(ctx context.Context, companyID, productID string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("export: exportador no configurado")
	}
	var (
		product *entity.Product
		list    []*entity.StockAdjustment
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		if product, err = ownedProduct(ctx, repos, companyID, productID); err != nil {
			return err
		}
		list, err = repos.Adjustments.ListByProduct(ctx, productID, 0, 0)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.AdjustmentHistory(product, list)
	if err != nil {
		return nil, "", fmt.Errorf("export adjustments: %w", err)
	}
	filename := fmt.Sprintf("ajustes_%s_%s.xlsx", product.SKU, time.Now().Format("20060102"))
	return data, filename, nil
}

// ownedProduct obtiene el producto y verifica que pertenezca a la empresa.
func ownedProduct(ctx context.Context, repos ports.Repositories, companyID, productID string) (*entity.Product, error) {
	p, err := repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("producto no encontrado: %s", productID)
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func toAdjustmentResponse(a *entity.StockAdjustment) dto.StockAdjustmentResponse {
	return dto.StockAdjustmentResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		ProductSKU:      a.ProductSKU,
		AdjustmentType:  a.Type,
		QuantityBefore:  a.QuantityBefore,
		QuantityAfter:   a.QuantityAfter,
		QuantityChange:  a.QuantityChange,
		Reason:          a.Reason,
		ReferenceNumber: a.ReferenceNumber,
		AdjustedBy:      a.AdjustedBy,
		CreatedAt:       a.CreatedAt,
	}
}
