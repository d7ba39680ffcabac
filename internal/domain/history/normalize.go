package history

import (
	"strings"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

// RawRow una fila cruda de cualquier fuente: columna -> valor string, tal como
// llega del CSV o del SELECT. El normalizador la convierte en la forma tipada
// por fuente o la descarta.
type RawRow map[string]string

// Alias de columnas por campo. Cada fuente ha cambiado de nombres entre
// generaciones del sistema; gana el primer alias con valor no vacío.
var (
	locationIDAliases = []string{"LocationLogID", "LogID", "ID"}
	shipIDAliases     = []string{"ShipID", "ID"}
	statusIDAliases   = []string{"StatusLogID", "LogID", "ID"}

	moldIDAliases   = []string{"MoldID", "MoldId"}
	cutterIDAliases = []string{"CutterID", "CutterId"}

	oldRackAliases = []string{"OldRackLayer", "OldRack"}
	newRackAliases = []string{"NewRackLayer", "NewRack"}

	fromCompanyAliases = []string{"FromCompanyID", "FromCompany"}
	toCompanyAliases   = []string{"ToCompanyID", "ToCompany"}

	employeeIDAliases  = []string{"EmployeeID", "EmpID"}
	handlerTextAliases = []string{"EmployeeName", "HandlerName", "Handler"}

	notesAliases = []string{"Notes", "Note", "Remark"}

	destinationAliases = []string{"DestinationID", "DestID"}
	statusAliases      = []string{"Status", "StatusText"}
	auditTypeAliases   = []string{"AuditType"}

	// Prioridad de columnas de fecha por fuente; gana la primera no vacía.
	locationDateAliases = []string{"Timestamp", "Date", "DateEntry"}
	shipDateAliases     = []string{"ShipDate", "Timestamp", "Date"}
	statusDateAliases   = []string{"Timestamp", "StatusDate", "Date"}
)

// pick devuelve el primer valor no vacío (recortado) entre los alias dados.
func pick(row RawRow, aliases []string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(row[a]); v != "" {
			return v
		}
	}
	return ""
}

// pickItem resuelve tipo e id de ítem. Si la fila trae MoldID y CutterID a la
// vez gana el molde: es la única anomalía de datos conocida y está testeada.
// ok=false cuando no hay ninguno de los dos (la fila se descarta sin evento).
func pickItem(row RawRow) (itemType, itemID string, ok bool) {
	if id := pick(row, moldIDAliases); id != "" {
		return entity.ItemTypeMold, id, true
	}
	if id := pick(row, cutterIDAliases); id != "" {
		return entity.ItemTypeCutter, id, true
	}
	return "", "", false
}

// NormalizeLocationRow convierte una fila cruda del locationlog.
// ok=false cuando la fila no identifica ningún ítem.
func NormalizeLocationRow(row RawRow) (entity.LocationRow, bool) {
	itemType, itemID, ok := pickItem(row)
	if !ok {
		return entity.LocationRow{}, false
	}
	return entity.LocationRow{
		LogID:      pick(row, locationIDAliases),
		ItemType:   itemType,
		ItemID:     itemID,
		OldRack:    pick(row, oldRackAliases),
		NewRack:    pick(row, newRackAliases),
		EmployeeID: pick(row, employeeIDAliases),
		Notes:      CollapseSpaces(pick(row, notesAliases)),
		RawDate:    pick(row, locationDateAliases),
	}, true
}

// NormalizeShipRow convierte una fila cruda del shiplog.
func NormalizeShipRow(row RawRow) (entity.ShipRow, bool) {
	itemType, itemID, ok := pickItem(row)
	if !ok {
		return entity.ShipRow{}, false
	}
	return entity.ShipRow{
		ShipID:        pick(row, shipIDAliases),
		ItemType:      itemType,
		ItemID:        itemID,
		FromCompanyID: pick(row, fromCompanyAliases),
		ToCompanyID:   pick(row, toCompanyAliases),
		EmployeeID:    pick(row, employeeIDAliases),
		HandlerText:   pick(row, handlerTextAliases),
		Notes:         CollapseSpaces(pick(row, notesAliases)),
		RawDate:       pick(row, shipDateAliases),
	}, true
}

// NormalizeStatusRow convierte una fila cruda del statuslog.
func NormalizeStatusRow(row RawRow) (entity.StatusRow, bool) {
	itemType, itemID, ok := pickItem(row)
	if !ok {
		return entity.StatusRow{}, false
	}
	return entity.StatusRow{
		LogID:         pick(row, statusIDAliases),
		ItemType:      itemType,
		ItemID:        itemID,
		Status:        pick(row, statusAliases),
		AuditType:     pick(row, auditTypeAliases),
		DestinationID: pick(row, destinationAliases),
		EmployeeID:    pick(row, employeeIDAliases),
		HandlerText:   pick(row, handlerTextAliases),
		Notes:         CollapseSpaces(pick(row, notesAliases)),
		RawDate:       pick(row, statusDateAliases),
	}, true
}
