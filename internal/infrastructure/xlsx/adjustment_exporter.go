// Package xlsx exporta el historial de ajustes de stock a Excel.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/inventory"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

var _ inventory.AdjustmentExporter = (*Exporter)(nil)

const sheetName = "Ajustes"

var header = []any{
	"Fecha", "Tipo", "Cantidad anterior", "Cantidad nueva", "Cambio", "Motivo", "Referencia", "Usuario",
}

// Exporter genera libros .xlsx con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// AdjustmentHistory una hoja con cabecera fija y una fila por ajuste (en el orden recibido).
func (e *Exporter) AdjustmentHistory(product *entity.Product, adjustments []*entity.StockAdjustment) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}

	title := []any{fmt.Sprintf("%s (%s)", product.Name, product.SKU), "Stock actual", product.QuantityOnHand}
	if err := f.SetSheetRow(sheetName, "A1", &title); err != nil {
		return nil, fmt.Errorf("xlsx: título: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A3", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A3", "H3", bold)
	}

	for i, a := range adjustments {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		values := []any{
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			a.Type,
			a.QuantityBefore,
			a.QuantityAfter,
			a.QuantityChange,
			a.Reason,
			a.ReferenceNumber,
			a.AdjustedBy,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "A", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 40)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
