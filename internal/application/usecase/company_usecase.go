package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFoundf("empresa no encontrada: %s", id)
	}
	return entityToCompanyResponse(company), nil
}

// SetModule activa o desactiva un módulo SaaS de la empresa.
func (uc *CompanyUseCase) SetModule(ctx context.Context, companyID string, in dto.SetModuleRequest) (*dto.CompanyModuleResponse, error) {
	if !entity.ValidModule(in.ModuleName) {
		return nil, domain.Invalidf("módulo desconocido: %s", in.ModuleName)
	}
	now := time.Now()
	m := &entity.CompanyModule{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ModuleName:  in.ModuleName,
		IsActive:    in.IsActive,
		ActivatedAt: now,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.UpsertModule(ctx, m); err != nil {
		return nil, err
	}
	return toModuleResponse(m), nil
}

// ListModules módulos configurados para la empresa.
func (uc *CompanyUseCase) ListModules(ctx context.Context, companyID string) ([]dto.CompanyModuleResponse, error) {
	list, err := uc.repo.ListModules(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyModuleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toModuleResponse(m))
	}
	return out, nil
}

func toModuleResponse(m *entity.CompanyModule) *dto.CompanyModuleResponse {
	return &dto.CompanyModuleResponse{
		ModuleName:  m.ModuleName,
		IsActive:    m.IsActive,
		ActivatedAt: m.ActivatedAt,
		ExpiresAt:   m.ExpiresAt,
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
