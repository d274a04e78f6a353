package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company y sus módulos SaaS.
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	ListActive(ctx context.Context) ([]*entity.Company, error)

	// UpsertModule activa/desactiva un módulo para la empresa.
	UpsertModule(ctx context.Context, module *entity.CompanyModule) error
	ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error)
	// HasActiveModule true si el módulo está activo y sin vencer.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
