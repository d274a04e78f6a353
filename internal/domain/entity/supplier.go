package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID            string
	CompanyID     string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductSupplier vincula un producto con un proveedor (precio pactado, tiempo de entrega, preferido).
type ProductSupplier struct {
	ID            string
	ProductID     string
	SupplierID    string
	SupplierSKU   string
	SupplierPrice *decimal.Decimal // nil = usar CostPrice del producto
	LeadTimeDays  int
	IsPreferred   bool
	CreatedAt     time.Time
}
