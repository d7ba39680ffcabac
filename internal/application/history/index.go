package history

import (
	"sort"
	"strings"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

// MasterIndex mapas id -> registro maestro para resolución de nombres.
// Se construye de cero en cada refresh, junto con el conjunto de eventos, a
// partir del mismo snapshot de fuentes: es un valor que se pasa explícito al
// materializador, nunca un singleton mutable del paquete.
//
// Un miss de lookup jamás es error: todos los llamadores usan el id crudo como
// texto de presentación.
type MasterIndex struct {
	molds        map[string]entity.ItemRecord
	cutters      map[string]entity.ItemRecord
	companies    map[string]entity.CompanyRecord
	employees    map[string]entity.EmployeeRecord
	destinations map[string]entity.DestinationRecord
}

// BuildIndex construye los mapas de lookup con ids recortados.
func BuildIndex(m entity.MasterRecords) *MasterIndex {
	idx := &MasterIndex{
		molds:        make(map[string]entity.ItemRecord, len(m.Molds)),
		cutters:      make(map[string]entity.ItemRecord, len(m.Cutters)),
		companies:    make(map[string]entity.CompanyRecord, len(m.Companies)),
		employees:    make(map[string]entity.EmployeeRecord, len(m.Employees)),
		destinations: make(map[string]entity.DestinationRecord, len(m.Destinations)),
	}
	for _, r := range m.Molds {
		if id := strings.TrimSpace(r.ID); id != "" {
			idx.molds[id] = r
		}
	}
	for _, r := range m.Cutters {
		if id := strings.TrimSpace(r.ID); id != "" {
			idx.cutters[id] = r
		}
	}
	for _, r := range m.Companies {
		if id := strings.TrimSpace(r.ID); id != "" {
			idx.companies[id] = r
		}
	}
	for _, r := range m.Employees {
		if id := strings.TrimSpace(r.ID); id != "" {
			idx.employees[id] = r
		}
	}
	for _, r := range m.Destinations {
		if id := strings.TrimSpace(r.ID); id != "" {
			idx.destinations[id] = r
		}
	}
	return idx
}

// Item busca el maestro de un ítem por tipo.
func (idx *MasterIndex) Item(itemType, id string) (entity.ItemRecord, bool) {
	switch itemType {
	case entity.ItemTypeMold:
		r, ok := idx.molds[id]
		return r, ok
	case entity.ItemTypeCutter:
		r, ok := idx.cutters[id]
		return r, ok
	}
	return entity.ItemRecord{}, false
}

// CompanyName resuelve el nombre de una compañía; cae al id crudo en un miss.
// Con id vacío devuelve cadena vacía (el campo no aplica a ese evento).
func (idx *MasterIndex) CompanyName(id string) string {
	if id == "" {
		return ""
	}
	if r, ok := idx.companies[id]; ok {
		return r.DisplayName()
	}
	return id
}

// DestinationName resuelve un destino: maestro de destinos, luego compañías,
// luego el id crudo.
func (idx *MasterIndex) DestinationName(id string) string {
	if id == "" {
		return ""
	}
	if r, ok := idx.destinations[id]; ok && r.Name != "" {
		return r.Name
	}
	return idx.CompanyName(id)
}

// EmployeeName resuelve el nombre de un empleado.
// Orden: maestro -> texto libre de la fila -> id crudo -> vacío.
func (idx *MasterIndex) EmployeeName(id, fallbackText string) string {
	if r, ok := idx.employees[id]; ok {
		return r.DisplayName()
	}
	if fallbackText != "" {
		return fallbackText
	}
	return id
}

// Companies devuelve las compañías ordenadas por nombre para poblar filtros.
func (idx *MasterIndex) Companies() []entity.CompanyRecord {
	out := make([]entity.CompanyRecord, 0, len(idx.companies))
	for _, r := range idx.companies {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName()) < strings.ToLower(out[j].DisplayName())
	})
	return out
}

// Employees devuelve los empleados ordenados por nombre para poblar filtros.
func (idx *MasterIndex) Employees() []entity.EmployeeRecord {
	out := make([]entity.EmployeeRecord, 0, len(idx.employees))
	for _, r := range idx.employees {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName()) < strings.ToLower(out[j].DisplayName())
	})
	return out
}
