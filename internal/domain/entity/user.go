package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin          = "ADMIN"
	RoleInventoryStaff = "INVENTORY_STAFF"
	RoleSalesStaff     = "SALES_STAFF"
	RolePurchaseStaff  = "PURCHASE_STAFF"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// AllRoles roles asignables a un usuario.
var AllRoles = []string{RoleAdmin, RoleInventoryStaff, RoleSalesStaff, RolePurchaseStaff}

// User pertenece a una Company. Email es único en todo el sistema.
type User struct {
	ID           string
	CompanyID    string
	Email        string // normalizado a minúsculas
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive solo los usuarios activos inician sesión y reciben notificaciones.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// ValidRole informa si role es uno de AllRoles.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
