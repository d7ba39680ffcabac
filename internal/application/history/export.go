package history

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
)

// Etiquetas de acción para exportación y presentación.
var actionLabels = map[entity.ActionKind]string{
	entity.ActionAudit:          "Auditoría",
	entity.ActionCheckin:        "Entrada",
	entity.ActionCheckout:       "Salida",
	entity.ActionLocationChange: "Cambio de ubicación",
	entity.ActionShipOut:        "Envío",
	entity.ActionShipIn:         "Devolución",
	entity.ActionShipMove:       "Traslado",
	entity.ActionOther:          "Otro",
}

// ActionLabel etiqueta humana de una acción; cae al código crudo si la acción
// no está en el mapa.
func ActionLabel(a entity.ActionKind) string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return string(a)
}

// ExportRow una fila lista para exportar, con el orden de columnas fijo:
// fecha, código, nombre, acción, desde, hasta, notas, responsable.
type ExportRow struct {
	Date     string
	ItemCode string
	ItemName string
	Action   string
	From     string
	To       string
	Notes    string
	Handler  string
}

// exportHeader el encabezado del CSV, en el mismo orden que ExportRow.
var exportHeader = []string{
	"Fecha", "Código", "Nombre", "Acción", "Desde", "Hasta", "Notas", "Responsable",
}

// fromToDisplay origen y destino de presentación: racks para cambios de
// ubicación, compañías para el resto.
func fromToDisplay(e *entity.MovementEvent) (from, to string) {
	if e.Action == entity.ActionLocationChange {
		return e.FromLocation, e.ToLocation
	}
	return e.FromCompanyName, e.ToCompanyName
}

// ExportRows proyecta los eventos (ya filtrados y ordenados, sin paginar) a
// filas de exportación con fechas en formato humano, no ISO crudo.
func ExportRows(events []entity.MovementEvent) []ExportRow {
	rows := make([]ExportRow, 0, len(events))
	for i := range events {
		e := &events[i]
		from, to := fromToDisplay(e)
		rows = append(rows, ExportRow{
			Date:     domhistory.FormatHuman(e.EventDate),
			ItemCode: e.ItemCode,
			ItemName: e.ItemName,
			Action:   ActionLabel(e.Action),
			From:     from,
			To:       to,
			Notes:    e.Notes,
			Handler:  e.HandlerName,
		})
	}
	return rows
}

// utf8BOM marca de orden de bytes; las hojas de cálculo en locales asiáticos
// interpretan mal el UTF-8 sin ella.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV escribe el CSV de exportación: BOM, encabezado y filas.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("escribir BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Date, r.ItemCode, r.ItemName, r.Action, r.From, r.To, r.Notes, r.Handler}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("escribir fila: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("finalizar CSV: %w", err)
	}
	return nil
}
