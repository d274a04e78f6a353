package usecase

import (
	"context"
	"fmt"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

// ModuleService decide si una empresa puede usar un módulo: la empresa debe estar activa
// y el módulo activado y sin vencer.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule devuelve error solo ante fallos de infraestructura.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("module: empresa %s: %w", companyID, err)
	}
	if company == nil || !company.IsActive() {
		return false, nil
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}
