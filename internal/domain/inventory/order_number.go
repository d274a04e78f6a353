package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos de número de orden.
const (
	SalesOrderPrefix    = "SO"
	PurchaseOrderPrefix = "PO"
)

// OrderNumber genera un número legible: <prefijo><yyyymmdd>-<8 hex en mayúscula>, ej. SO20240131-1A2B3C4D.
func OrderNumber(prefix string, t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s%s-%s", prefix, t.Format("20060102"), suffix)
}
