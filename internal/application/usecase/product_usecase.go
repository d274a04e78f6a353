package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

// Valores por defecto de un producto nuevo.
const (
	DefaultReorderPoint    = 10
	DefaultReorderQuantity = 50
)

// ProductUseCase casos de uso de catálogo para productos. El stock solo cambia vía ajustes y órdenes.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con su stock inicial. SKU único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("sku y name son obligatorios")
	}
	if in.UnitPrice.IsNegative() || in.CostPrice.IsNegative() {
		return nil, domain.Invalidf("los precios no pueden ser negativos")
	}
	if !inventory.HasMoneyScale(in.UnitPrice) || !inventory.HasMoneyScale(in.CostPrice) {
		return nil, domain.Invalidf("los precios admiten como máximo 2 decimales")
	}
	if in.QuantityOnHand < 0 {
		return nil, domain.Invalidf("el stock inicial no puede ser negativo")
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	reorderPoint, reorderQty := DefaultReorderPoint, DefaultReorderQuantity
	if in.ReorderPoint != nil {
		reorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		reorderQty = *in.ReorderQuantity
	}
	if reorderPoint < 0 || reorderQty < 0 {
		return nil, domain.Invalidf("punto y cantidad de reorden no pueden ser negativos")
	}
	unit := in.UnitOfMeasure
	if unit == "" {
		unit = "UNIT"
	}

	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		SKU:                sku,
		Name:               strings.TrimSpace(in.Name),
		Description:        in.Description,
		UnitPrice:          in.UnitPrice,
		CostPrice:          in.CostPrice,
		QuantityOnHand:     in.QuantityOnHand,
		ReorderPoint:       reorderPoint,
		ReorderQuantity:    reorderQty,
		AutoReorderEnabled: in.AutoReorderEnabled,
		ExpiryDate:         in.ExpiryDate,
		UnitOfMeasure:      unit,
		IsActive:           true,
		CreatedBy:          userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update actualiza datos de catálogo. No modifica el stock.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.ReorderPoint != nil {
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		product.ReorderQuantity = *in.ReorderQuantity
	}
	if in.AutoReorderEnabled != nil {
		product.AutoReorderEnabled = *in.AutoReorderEnabled
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if product.UnitPrice.LessThan(decimal.Zero) || product.CostPrice.LessThan(decimal.Zero) {
		return nil, domain.Invalidf("los precios no pueden ser negativos")
	}
	if !inventory.HasMoneyScale(product.UnitPrice) || !inventory.HasMoneyScale(product.CostPrice) {
		return nil, domain.Invalidf("los precios admiten como máximo 2 decimales")
	}
	if product.ReorderPoint < 0 || product.ReorderQuantity < 0 {
		return nil, domain.Invalidf("punto y cantidad de reorden no pueden ser negativos")
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ProductUseCase) owned(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto no encontrado: %s", id)
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// ToProductResponse mapea la entidad a su DTO con los campos derivados.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                 p.ID,
		CompanyID:          p.CompanyID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		UnitPrice:          p.UnitPrice,
		CostPrice:          p.CostPrice,
		QuantityOnHand:     p.QuantityOnHand,
		ReorderPoint:       p.ReorderPoint,
		ReorderQuantity:    p.ReorderQuantity,
		AutoReorderEnabled: p.AutoReorderEnabled,
		ExpiryDate:         p.ExpiryDate,
		UnitOfMeasure:      p.UnitOfMeasure,
		IsActive:           p.IsActive,
		IsLowStock:         p.IsLowStock(),
		IsExpired:          p.IsExpired(time.Now()),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
