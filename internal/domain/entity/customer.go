package entity

import "time"

// Customer representa un cliente de la empresa (ventas).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
