package history

import (
	"sort"
	"strings"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
)

// Claves de ordenamiento soportadas.
const (
	SortByDate    = "date"
	SortByItem    = "item"
	SortByAction  = "action"
	SortByFromTo  = "fromto"
	SortByNotes   = "notes"
	SortByHandler = "handler"
)

// Filter conjunción (AND) de predicados independientes; cada parámetro vacío
// es un no-op.
type Filter struct {
	DateFrom  string // YYYY-MM-DD inclusivo
	DateTo    string // YYYY-MM-DD inclusivo
	Action    string // igualdad exacta contra ActionKind
	HandlerID string // igualdad exacta
	Rack      string // subcadena case-insensitive sobre from/to rack (OR)
	Company   string // subcadena case-insensitive sobre ids y nombres de compañía (OR)
	Keyword   string // subcadena case-insensitive sobre el set fijo de campos (OR)
}

// Sort clave y dirección de ordenamiento. Por defecto fecha descendente.
type Sort struct {
	Key  string
	Desc bool
}

// DefaultSort el orden por defecto de la vista de historial.
func DefaultSort() Sort { return Sort{Key: SortByDate, Desc: true} }

// QueryResult página de resultados más los metadatos de paginación.
type QueryResult struct {
	PageItems   []entity.MovementEvent
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// predicate un predicado compilado sobre un evento.
type predicate func(e *entity.MovementEvent) bool

// compile arma la lista de predicados activos del filtro. La conjunción de
// una lista vacía acepta todo.
func (f Filter) compile() []predicate {
	var preds []predicate

	if f.DateFrom != "" || f.DateTo != "" {
		from, to := f.DateFrom, f.DateTo
		preds = append(preds, func(e *entity.MovementEvent) bool {
			// Con un rango activo los eventos sin fecha quedan excluidos,
			// nunca incluidos en silencio.
			if e.EventDateKey == "" {
				return false
			}
			// Comparación lexicográfica: la clave es ISO de ancho fijo.
			if from != "" && e.EventDateKey < from {
				return false
			}
			if to != "" && e.EventDateKey > to {
				return false
			}
			return true
		})
	}
	if f.Action != "" {
		action := entity.ActionKind(f.Action)
		preds = append(preds, func(e *entity.MovementEvent) bool {
			return e.Action == action
		})
	}
	if f.HandlerID != "" {
		preds = append(preds, func(e *entity.MovementEvent) bool {
			return e.HandlerID == f.HandlerID
		})
	}
	if f.Rack != "" {
		preds = append(preds, func(e *entity.MovementEvent) bool {
			return domhistory.ContainsFold(e.FromLocation, f.Rack) ||
				domhistory.ContainsFold(e.ToLocation, f.Rack)
		})
	}
	if f.Company != "" {
		preds = append(preds, func(e *entity.MovementEvent) bool {
			return domhistory.ContainsFold(e.FromCompanyID, f.Company) ||
				domhistory.ContainsFold(e.ToCompanyID, f.Company) ||
				domhistory.ContainsFold(e.FromCompanyName, f.Company) ||
				domhistory.ContainsFold(e.ToCompanyName, f.Company)
		})
	}
	if f.Keyword != "" {
		preds = append(preds, func(e *entity.MovementEvent) bool {
			for _, field := range []string{
				e.ItemCode, e.ItemName, e.Notes, e.HandlerName,
				e.FromCompanyName, e.ToCompanyName,
				e.FromLocation, e.ToLocation,
				string(e.Action), e.Source,
			} {
				if domhistory.ContainsFold(field, f.Keyword) {
					return true
				}
			}
			return false
		})
	}
	return preds
}

// Apply devuelve los eventos que pasan todos los predicados activos.
func (f Filter) Apply(events []entity.MovementEvent) []entity.MovementEvent {
	preds := f.compile()
	if len(preds) == 0 {
		return events
	}
	out := make([]entity.MovementEvent, 0, len(events))
	for i := range events {
		keep := true
		for _, p := range preds {
			if !p(&events[i]) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, events[i])
		}
	}
	return out
}

// itemKey cadena compuesta para ordenar y desempatar por ítem.
func itemKey(e *entity.MovementEvent) string {
	return e.ItemCode + " " + e.ItemName
}

// fromToKey concatena los valores de presentación de origen y destino
// (racks para cambios de ubicación, compañías para envíos).
func fromToKey(e *entity.MovementEvent) string {
	from, to := e.FromLocation, e.ToLocation
	if from == "" && to == "" {
		from, to = e.FromCompanyName, e.ToCompanyName
	}
	return from + " " + to
}

// sortKey la cadena derivada de las claves no-fecha.
func sortKey(e *entity.MovementEvent, key string) string {
	switch key {
	case SortByItem:
		return itemKey(e)
	case SortByAction:
		return string(e.Action)
	case SortByFromTo:
		return fromToKey(e)
	case SortByNotes:
		return e.Notes
	case SortByHandler:
		return e.HandlerName
	}
	return itemKey(e)
}

// SortEvents ordena una copia del slice con comparador estable.
//
// Caso especial de la clave fecha: los eventos con fecha resoluble van siempre
// antes que los sin fecha, sin importar la dirección; entre dos con fecha se
// compara el instante en la dirección pedida; entre dos sin fecha se desempata
// por código/nombre de ítem, case-insensitive.
func SortEvents(events []entity.MovementEvent, s Sort) []entity.MovementEvent {
	if s.Key == "" {
		s = DefaultSort()
	}
	out := make([]entity.MovementEvent, len(events))
	copy(out, events)

	if s.Key == SortByDate {
		sort.SliceStable(out, func(i, j int) bool {
			ti, oki := domhistory.ParseEventTime(out[i].EventDate)
			tj, okj := domhistory.ParseEventTime(out[j].EventDate)
			if oki != okj {
				return oki // con fecha siempre primero
			}
			if !oki {
				return strings.ToLower(itemKey(&out[i])) < strings.ToLower(itemKey(&out[j]))
			}
			if ti.Equal(tj) {
				return false // estable: conserva el orden de llegada
			}
			if s.Desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		ki := strings.ToLower(sortKey(&out[i], s.Key))
		kj := strings.ToLower(sortKey(&out[j], s.Key))
		if ki == kj {
			return false
		}
		if s.Desc {
			return ki > kj
		}
		return ki < kj
	})
	return out
}

// Paginate calcula los metadatos de página y recorta el slice.
// TotalPages tiene piso 1 aun con cero eventos; la página pedida se clampa a
// [1, TotalPages] — tras un filtro que achica el conjunto, la página vigente
// cae a la última válida en lugar de quedar fuera de rango.
func Paginate(events []entity.MovementEvent, page, pageSize int) QueryResult {
	total := len(events)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return QueryResult{
		PageItems:   events[start:end],
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

// Query aplica filtro, orden y paginación sobre el conjunto reconciliado.
// El reset de página a 1 es decisión del llamador: debe resetear al cambiar
// cualquier filtro y no debe resetear al navegar de página.
func Query(events []entity.MovementEvent, f Filter, s Sort, page, pageSize int) QueryResult {
	filtered := f.Apply(events)
	sorted := SortEvents(filtered, s)
	return Paginate(sorted, page, pageSize)
}
