package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LinkProductSupplierRequest vincula un producto a un proveedor.
type LinkProductSupplierRequest struct {
	ProductID     string           `json:"product_id" validate:"required,uuid"`
	SupplierSKU   string           `json:"supplier_sku"`
	SupplierPrice *decimal.Decimal `json:"supplier_price"`
	LeadTimeDays  *int             `json:"lead_time_days"`
	IsPreferred   bool             `json:"is_preferred"`
}

// ProductSupplierResponse salida de un vínculo producto-proveedor.
type ProductSupplierResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	SupplierID    string           `json:"supplier_id"`
	SupplierSKU   string           `json:"supplier_sku,omitempty"`
	SupplierPrice *decimal.Decimal `json:"supplier_price,omitempty"`
	LeadTimeDays  int              `json:"lead_time_days"`
	IsPreferred   bool             `json:"is_preferred"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
