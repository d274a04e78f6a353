package entity

import "time"

// Estados de Company. Una empresa no activa pierde el acceso a todos sus módulos.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company tenant del sistema; todo producto, orden y usuario cuelga de una.
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive también decide si el bot de reorden la procesa.
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// Módulos que se pueden activar por empresa (CHECK de company_modules).
const (
	ModuleInventory  = "inventory"
	ModuleSales      = "sales"
	ModulePurchasing = "purchasing"
)

// AllModules módulos que se activan al crear una empresa.
var AllModules = []string{ModuleInventory, ModuleSales, ModulePurchasing}

// ValidModule informa si name es uno de AllModules.
func ValidModule(name string) bool {
	for _, m := range AllModules {
		if m == name {
			return true
		}
	}
	return false
}

// CompanyModule activación de un módulo en una empresa. Una fila por (empresa, módulo).
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enabled activo y sin vencer a la fecha now.
func (m *CompanyModule) Enabled(now time.Time) bool {
	return m.IsActive && (m.ExpiresAt == nil || m.ExpiresAt.After(now))
}
