package history

import (
	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
)

// Materializador: fila normalizada + acción clasificada + lookups del índice
// -> MovementEvent final. Función total: nunca falla ni omite campos
// requeridos; cada join tiene su fallback para que una fila mala no aborte la
// reconciliación del resto.

// resolveItem aplica el orden de resolución de código/nombre:
// maestro explícito -> id crudo.
func resolveItem(idx *MasterIndex, itemType, itemID string) (code, name string) {
	if r, ok := idx.Item(itemType, itemID); ok {
		code, name = r.Code, r.Name
	}
	if code == "" {
		code = itemID
	}
	if name == "" {
		name = itemID
	}
	return code, name
}

// MaterializeLocation produce los eventos del locationlog, aplicando la
// supresión de no-ops del clasificador.
func MaterializeLocation(rows []entity.LocationRow, idx *MasterIndex) []entity.MovementEvent {
	events := make([]entity.MovementEvent, 0, len(rows))
	for _, r := range rows {
		action, ok := domhistory.ClassifyLocation(r)
		if !ok {
			continue
		}
		code, name := resolveItem(idx, r.ItemType, r.ItemID)
		events = append(events, entity.MovementEvent{
			EventID:      "L" + r.LogID,
			Source:       entity.SourceLocationLog,
			Action:       action,
			ItemType:     r.ItemType,
			ItemID:       r.ItemID,
			ItemCode:     code,
			ItemName:     name,
			EventDate:    r.RawDate,
			EventDateKey: domhistory.DateKey(r.RawDate),
			FromLocation: r.OldRack,
			ToLocation:   r.NewRack,
			Notes:        r.Notes,
			HandlerID:    r.EmployeeID,
			HandlerName:  idx.EmployeeName(r.EmployeeID, ""),
		})
	}
	return events
}

// MaterializeShip produce los eventos del shiplog clasificados contra homeID.
func MaterializeShip(rows []entity.ShipRow, idx *MasterIndex, homeID string) []entity.MovementEvent {
	events := make([]entity.MovementEvent, 0, len(rows))
	for _, r := range rows {
		code, name := resolveItem(idx, r.ItemType, r.ItemID)
		events = append(events, entity.MovementEvent{
			EventID:         "S" + r.ShipID,
			Source:          entity.SourceShipLog,
			Action:          domhistory.ClassifyShip(r, homeID),
			ItemType:        r.ItemType,
			ItemID:          r.ItemID,
			ItemCode:        code,
			ItemName:        name,
			EventDate:       r.RawDate,
			EventDateKey:    domhistory.DateKey(r.RawDate),
			FromCompanyID:   r.FromCompanyID,
			ToCompanyID:     r.ToCompanyID,
			FromCompanyName: idx.CompanyName(r.FromCompanyID),
			ToCompanyName:   idx.CompanyName(r.ToCompanyID),
			Notes:           r.Notes,
			HandlerID:       r.EmployeeID,
			HandlerName:     idx.EmployeeName(r.EmployeeID, r.HandlerText),
		})
	}
	return events
}

// MaterializeStatus produce los eventos del statuslog. Cuando la acción
// resulta ser un envío y la fila trae destino, el destino se publica como
// compañía de destino del evento.
func MaterializeStatus(rows []entity.StatusRow, idx *MasterIndex) []entity.MovementEvent {
	events := make([]entity.MovementEvent, 0, len(rows))
	for _, r := range rows {
		action := domhistory.ClassifyStatus(r)
		code, name := resolveItem(idx, r.ItemType, r.ItemID)
		ev := entity.MovementEvent{
			EventID:      "ST" + r.LogID,
			Source:       entity.SourceStatusLog,
			Action:       action,
			ItemType:     r.ItemType,
			ItemID:       r.ItemID,
			ItemCode:     code,
			ItemName:     name,
			EventDate:    r.RawDate,
			EventDateKey: domhistory.DateKey(r.RawDate),
			Notes:        r.Notes,
			HandlerID:    r.EmployeeID,
			HandlerName:  idx.EmployeeName(r.EmployeeID, r.HandlerText),
		}
		if r.DestinationID != "" && (action == entity.ActionShipOut || action == entity.ActionShipIn) {
			ev.ToCompanyID = r.DestinationID
			ev.ToCompanyName = idx.DestinationName(r.DestinationID)
		}
		events = append(events, ev)
	}
	return events
}

// Materialize normaliza, clasifica y materializa las tres fuentes crudas en un
// único conjunto de eventos. Las filas sin ítem se descartan en silencio; las
// filas no-op del locationlog se suprimen; nada aquí puede fallar.
func Materialize(
	locRaw, shipRaw, statusRaw []domhistory.RawRow,
	idx *MasterIndex,
	homeID string,
) []entity.MovementEvent {
	locRows := make([]entity.LocationRow, 0, len(locRaw))
	for _, raw := range locRaw {
		if r, ok := domhistory.NormalizeLocationRow(raw); ok {
			locRows = append(locRows, r)
		}
	}
	shipRows := make([]entity.ShipRow, 0, len(shipRaw))
	for _, raw := range shipRaw {
		if r, ok := domhistory.NormalizeShipRow(raw); ok {
			shipRows = append(shipRows, r)
		}
	}
	statusRows := make([]entity.StatusRow, 0, len(statusRaw))
	for _, raw := range statusRaw {
		if r, ok := domhistory.NormalizeStatusRow(raw); ok {
			statusRows = append(statusRows, r)
		}
	}

	events := MaterializeLocation(locRows, idx)
	events = append(events, MaterializeShip(shipRows, idx, homeID)...)
	events = append(events, MaterializeStatus(statusRows, idx)...)
	return events
}
