package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundMoney redondea a 2 decimales, mitad hacia arriba.
// decimal.Round redondea la mitad alejándose de cero, que coincide con HALF_UP para montos positivos.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// HasMoneyScale indica si d tiene como máximo 2 decimales significativos.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// SalesLineTotal calcula el total de una línea de venta:
// unitPrice * qty * (1 - descuento/100), con el factor de descuento a 6 decimales y el resultado a 2.
func SalesLineTotal(unitPrice decimal.Decimal, qty int, discountPercent decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	if discountPercent.IsZero() {
		return RoundMoney(gross)
	}
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred).Round(6))
	return RoundMoney(gross.Mul(factor))
}

// PurchaseLineTotal calcula unitCost * qty redondeado a 2 decimales.
func PurchaseLineTotal(unitCost decimal.Decimal, qty int) decimal.Decimal {
	return RoundMoney(unitCost.Mul(decimal.NewFromInt(int64(qty))))
}

// SalesTotal: subtotal + impuesto - descuento.
func SalesTotal(subtotal, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Sub(discount)
}

// PurchaseTotal: subtotal + impuesto + envío.
func PurchaseTotal(subtotal, tax, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(shipping)
}
