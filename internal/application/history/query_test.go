package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphistory "github.com/tu-usuario/historial-almacen/internal/application/history"
	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

// evento helper compacto para armar fixtures.
func evento(id string, action entity.ActionKind, date string, mut ...func(*entity.MovementEvent)) entity.MovementEvent {
	e := entity.MovementEvent{
		EventID:      id,
		Source:       entity.SourceStatusLog,
		Action:       action,
		ItemType:     entity.ItemTypeMold,
		ItemID:       id,
		ItemCode:     "M-" + id,
		ItemName:     "Khuôn " + id,
		EventDate:    date,
	}
	if date != "" {
		e.EventDateKey = date[:10]
	}
	for _, fn := range mut {
		fn(&e)
	}
	return e
}

func fixtureEventos() []entity.MovementEvent {
	return []entity.MovementEvent{
		evento("1", entity.ActionAudit, "2025-06-01 08:00:00"),
		evento("2", entity.ActionCheckin, "2025-06-02 09:00:00"),
		evento("3", entity.ActionLocationChange, "2025-06-03 10:00:00", func(e *entity.MovementEvent) {
			e.FromLocation, e.ToLocation = "3-2", "5-1"
		}),
		evento("4", entity.ActionShipOut, "2025-06-04 11:00:00", func(e *entity.MovementEvent) {
			e.ToCompanyID, e.ToCompanyName = "9", "Xưởng mạ B"
		}),
		evento("5", entity.ActionOther, ""), // sin fecha parseable
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip y filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestQuery_SinFiltros_TotalIgualAlConjunto(t *testing.T) {
	events := fixtureEventos()
	res := apphistory.Query(events, apphistory.Filter{}, apphistory.DefaultSort(), 1, 20)
	assert.Equal(t, len(events), res.TotalCount)
	assert.Len(t, res.PageItems, len(events))
}

func TestFilter_RangoDeFechas_ExcluyeSinFecha(t *testing.T) {
	f := apphistory.Filter{DateFrom: "2025-06-01", DateTo: "2025-06-30"}
	got := f.Apply(fixtureEventos())
	require.Len(t, got, 4, "el evento sin EventDateKey queda fuera con rango activo")
	for _, e := range got {
		assert.NotEmpty(t, e.EventDateKey)
	}
}

func TestFilter_RangoDeFechas_InclusiveEnAmbosExtremos(t *testing.T) {
	f := apphistory.Filter{DateFrom: "2025-06-02", DateTo: "2025-06-03"}
	got := f.Apply(fixtureEventos())
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].EventID)
	assert.Equal(t, "3", got[1].EventID)
}

func TestFilter_PorAccion(t *testing.T) {
	f := apphistory.Filter{Action: "AUDIT"}
	got := f.Apply(fixtureEventos())
	require.Len(t, got, 1)
	assert.Equal(t, entity.ActionAudit, got[0].Action)
}

func TestFilter_PorRack_AmbosLados(t *testing.T) {
	events := fixtureEventos()
	assert.Len(t, apphistory.Filter{Rack: "3-2"}.Apply(events), 1, "lado origen")
	assert.Len(t, apphistory.Filter{Rack: "5-1"}.Apply(events), 1, "lado destino")
	assert.Empty(t, apphistory.Filter{Rack: "9-9"}.Apply(events))
}

func TestFilter_PorCompania_IdONombre(t *testing.T) {
	events := fixtureEventos()
	assert.Len(t, apphistory.Filter{Company: "9"}.Apply(events), 1)
	assert.Len(t, apphistory.Filter{Company: "xưởng mạ"}.Apply(events), 1, "nombre, case-insensitive")
}

func TestFilter_KeywordLibre(t *testing.T) {
	events := fixtureEventos()
	got := apphistory.Filter{Keyword: "khuôn 2"}.Apply(events)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].EventID)

	// La acción y la fuente también participan del escaneo.
	assert.Len(t, apphistory.Filter{Keyword: "ship_out"}.Apply(events), 1)
	assert.Len(t, apphistory.Filter{Keyword: "statuslog"}.Apply(events), len(events))
}

func TestFilter_Conjuncion(t *testing.T) {
	events := fixtureEventos()
	got := apphistory.Filter{DateFrom: "2025-06-03", Action: "SHIP_OUT"}.Apply(events)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].EventID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden
// ──────────────────────────────────────────────────────────────────────────────

func TestSortEvents_FechaDesc_PorDefecto(t *testing.T) {
	got := apphistory.SortEvents(fixtureEventos(), apphistory.DefaultSort())
	require.Len(t, got, 5)
	assert.Equal(t, "4", got[0].EventID)
	assert.Equal(t, "1", got[3].EventID)
	assert.Equal(t, "5", got[4].EventID, "sin fecha siempre al final")
}

// Invariante de fecha: con fecha siempre antes que sin fecha, en ambas direcciones.
func TestSortEvents_SinFechaAlFinal_EnAmbasDirecciones(t *testing.T) {
	for _, desc := range []bool{true, false} {
		got := apphistory.SortEvents(fixtureEventos(), apphistory.Sort{Key: apphistory.SortByDate, Desc: desc})
		assert.Equal(t, "5", got[len(got)-1].EventID, "desc=%v", desc)
	}
}

func TestSortEvents_Idempotente(t *testing.T) {
	s := apphistory.Sort{Key: apphistory.SortByDate, Desc: true}
	once := apphistory.SortEvents(fixtureEventos(), s)
	twice := apphistory.SortEvents(once, s)
	assert.Equal(t, once, twice, "ordenar lo ya ordenado no cambia nada")
}

func TestSortEvents_EmpateDeFecha_ConservaOrdenDeLlegada(t *testing.T) {
	a := evento("a", entity.ActionAudit, "2025-06-01 08:00:00")
	b := evento("b", entity.ActionAudit, "2025-06-01 08:00:00")
	got := apphistory.SortEvents([]entity.MovementEvent{a, b}, apphistory.Sort{Key: apphistory.SortByDate, Desc: true})
	assert.Equal(t, "a", got[0].EventID)
	assert.Equal(t, "b", got[1].EventID)
}

func TestSortEvents_PorItem_Asc(t *testing.T) {
	got := apphistory.SortEvents(fixtureEventos(), apphistory.Sort{Key: apphistory.SortByItem})
	assert.Equal(t, "1", got[0].EventID)
	assert.Equal(t, "5", got[len(got)-1].EventID)
}

func TestSortEvents_PorFromTo(t *testing.T) {
	got := apphistory.SortEvents(fixtureEventos(), apphistory.Sort{Key: apphistory.SortByFromTo, Desc: true})
	// La clave de e3 es "3-2 5-1"; la de e4 arranca con origen vacío
	// (" xưởng mạ b"), así que en descendente e3 queda primero.
	assert.Equal(t, "3", got[0].EventID)
	assert.Equal(t, "4", got[1].EventID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPaginate_ConjuntoVacio_UnaPagina(t *testing.T) {
	res := apphistory.Paginate(nil, 1, 20)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages, "piso de 1 página aun sin eventos")
	assert.Equal(t, 1, res.CurrentPage)
	assert.Empty(t, res.PageItems)
}

func TestPaginate_ClampDePagina(t *testing.T) {
	events := fixtureEventos() // 5 eventos, pageSize 2 -> 3 páginas
	res := apphistory.Paginate(events, 7, 2)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.CurrentPage, "página fuera de rango cae a la última")
	assert.Len(t, res.PageItems, 1)

	res = apphistory.Paginate(events, 0, 2)
	assert.Equal(t, 1, res.CurrentPage, "página < 1 cae a la primera")
}

func TestQuery_FiltroReduceElConjunto_PaginaSeClampa(t *testing.T) {
	events := fixtureEventos()
	// Página 3 válida sin filtro...
	res := apphistory.Query(events, apphistory.Filter{}, apphistory.DefaultSort(), 3, 2)
	assert.Equal(t, 3, res.CurrentPage)
	// ...pero tras filtrar a 1 evento, la misma página pedida se clampa.
	res = apphistory.Query(events, apphistory.Filter{Action: "AUDIT"}, apphistory.DefaultSort(), 3, 2)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Len(t, res.PageItems, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario del tablero: filtro por AUDIT + resumen sobre el filtrado
// ──────────────────────────────────────────────────────────────────────────────

func TestQueryYSummarize_FiltroPorAudit(t *testing.T) {
	var events []entity.MovementEvent
	for i := 0; i < 3; i++ {
		events = append(events, evento(string(rune('a'+i)), entity.ActionAudit, "2025-06-01 08:00:00"))
	}
	for i := 0; i < 7; i++ {
		events = append(events, evento(string(rune('k'+i)), entity.ActionCheckin, "2025-06-02 08:00:00"))
	}

	filtered := apphistory.Filter{Action: "AUDIT"}.Apply(events)
	require.Len(t, filtered, 3)

	s := apphistory.Summarize(filtered)
	assert.Equal(t, apphistory.Summary{Total: 3, Audit: 3, Move: 0, InOut: 0}, s)
}
