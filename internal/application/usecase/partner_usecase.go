package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

// DefaultLeadTimeDays tiempo de entrega por defecto de un vínculo producto-proveedor.
const DefaultLeadTimeDays = 7

// SupplierUseCase casos de uso para proveedores y su vínculo con productos.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo}
}

// Create crea un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("name es obligatorio")
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores de la empresa.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// LinkProduct vincula un producto de la empresa con el proveedor (precio pactado, tiempo de entrega, preferido).
func (uc *SupplierUseCase) LinkProduct(ctx context.Context, companyID, supplierID string, in dto.LinkProductSupplierRequest) (*dto.ProductSupplierResponse, error) {
	if _, err := uc.owned(ctx, companyID, supplierID); err != nil {
		return nil, err
	}
	p, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("producto no encontrado: %s", in.ProductID)
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.SupplierPrice != nil && in.SupplierPrice.IsNegative() {
		return nil, domain.Invalidf("supplier_price no puede ser negativo")
	}
	if in.SupplierPrice != nil && !inventory.HasMoneyScale(*in.SupplierPrice) {
		return nil, domain.Invalidf("supplier_price admite como máximo 2 decimales")
	}
	lead := DefaultLeadTimeDays
	if in.LeadTimeDays != nil {
		if *in.LeadTimeDays < 0 {
			return nil, domain.Invalidf("lead_time_days no puede ser negativo")
		}
		lead = *in.LeadTimeDays
	}
	link := &entity.ProductSupplier{
		ID:            uuid.New().String(),
		ProductID:     p.ID,
		SupplierID:    supplierID,
		SupplierSKU:   in.SupplierSKU,
		SupplierPrice: in.SupplierPrice,
		LeadTimeDays:  lead,
		IsPreferred:   in.IsPreferred,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.LinkProduct(ctx, link); err != nil {
		return nil, err
	}
	return toLinkResponse(link), nil
}

// ProductLinks vínculos de un producto con sus proveedores.
func (uc *SupplierUseCase) ProductLinks(ctx context.Context, companyID, productID string) ([]dto.ProductSupplierResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("producto no encontrado: %s", productID)
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	links, err := uc.repo.ListProductLinks(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSupplierResponse, 0, len(links))
	for _, l := range links {
		out = append(out, *toLinkResponse(l))
	}
	return out, nil
}

func (uc *SupplierUseCase) owned(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFoundf("proveedor no encontrado: %s", id)
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

func toLinkResponse(l *entity.ProductSupplier) *dto.ProductSupplierResponse {
	return &dto.ProductSupplierResponse{
		ID:            l.ID,
		ProductID:     l.ProductID,
		SupplierID:    l.SupplierID,
		SupplierSKU:   l.SupplierSKU,
		SupplierPrice: l.SupplierPrice,
		LeadTimeDays:  l.LeadTimeDays,
		IsPreferred:   l.IsPreferred,
	}
}

// CustomerUseCase casos de uso para clientes (ventas).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("name es obligatorio")
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFoundf("cliente no encontrado: %s", id)
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(c), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
