package dto

import "time"

// SignupRequest alta de una empresa nueva junto con su primer administrador.
type SignupRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=1,max=200"`
	CompanyAddress string `json:"company_address"`
	CompanyPhone   string `json:"company_phone"`
	AdminName      string `json:"admin_name" validate:"omitempty,max=200"`
	AdminEmail     string `json:"admin_email" validate:"required,email"`
	AdminPassword  string `json:"admin_password" validate:"required,min=8"`
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetModuleRequest activa o desactiva un módulo SaaS.
type SetModuleRequest struct {
	ModuleName string     `json:"module_name" validate:"required,oneof=inventory sales purchasing"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// CompanyModuleResponse salida de un módulo de la empresa.
type CompanyModuleResponse struct {
	ModuleName  string     `json:"module_name"`
	IsActive    bool       `json:"is_active"`
	ActivatedAt time.Time  `json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
