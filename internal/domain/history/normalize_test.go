package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	"github.com/tu-usuario/historial-almacen/internal/domain/history"
)

func TestNormalizeLocationRow_CamposRecortados(t *testing.T) {
	row := history.RawRow{
		"LocationLogID": " 15 ",
		"MoldID":        " 100 ",
		"OldRackLayer":  " 3-2 ",
		"NewRackLayer":  "5-1",
		"EmployeeID":    "E7",
		"Notes":         "  di   chuyển \t kệ  ",
		"Timestamp":     "2025-06-01 08:30:00",
	}
	loc, ok := history.NormalizeLocationRow(row)
	require.True(t, ok)
	assert.Equal(t, "15", loc.LogID)
	assert.Equal(t, entity.ItemTypeMold, loc.ItemType)
	assert.Equal(t, "100", loc.ItemID)
	assert.Equal(t, "3-2", loc.OldRack)
	assert.Equal(t, "5-1", loc.NewRack)
	assert.Equal(t, "di chuyển kệ", loc.Notes, "las notas se normalizan en espacios")
	assert.Equal(t, "2025-06-01 08:30:00", loc.RawDate)
}

func TestNormalizeRow_SinMoldeNiCuchilla_SeDescarta(t *testing.T) {
	row := history.RawRow{"OldRackLayer": "1-1", "NewRackLayer": "2-2"}
	_, ok := history.NormalizeLocationRow(row)
	assert.False(t, ok, "una fila sin identificador de ítem no produce evento")

	_, ok = history.NormalizeShipRow(history.RawRow{"ToCompanyID": "9"})
	assert.False(t, ok)

	_, ok = history.NormalizeStatusRow(history.RawRow{"Status": "in"})
	assert.False(t, ok)
}

// La anomalía conocida: una fila con MoldID y CutterID a la vez es un molde.
func TestNormalizeRow_MoldeYCuchilla_GanaElMolde(t *testing.T) {
	row := history.RawRow{"MoldID": "100", "CutterID": "55"}
	ship, ok := history.NormalizeShipRow(row)
	require.True(t, ok)
	assert.Equal(t, entity.ItemTypeMold, ship.ItemType)
	assert.Equal(t, "100", ship.ItemID)
}

func TestNormalizeRow_SoloCuchilla(t *testing.T) {
	row := history.RawRow{"CutterID": "55", "Status": "out"}
	st, ok := history.NormalizeStatusRow(row)
	require.True(t, ok)
	assert.Equal(t, entity.ItemTypeCutter, st.ItemType)
	assert.Equal(t, "55", st.ItemID)
}

// Prioridad de alias de fecha: gana la primera columna no vacía de la lista
// específica de cada fuente.
func TestNormalizeRow_PrioridadDeFechas(t *testing.T) {
	loc, ok := history.NormalizeLocationRow(history.RawRow{
		"MoldID":    "1",
		"Timestamp": "2025-01-02 10:00:00",
		"Date":      "2024-12-31",
	})
	require.True(t, ok)
	assert.Equal(t, "2025-01-02 10:00:00", loc.RawDate, "Timestamp antes que Date")

	loc, ok = history.NormalizeLocationRow(history.RawRow{
		"MoldID":    "1",
		"Timestamp": "   ", // vacío tras recortar: pasa al siguiente alias
		"DateEntry": "2024-11-11",
	})
	require.True(t, ok)
	assert.Equal(t, "2024-11-11", loc.RawDate)

	ship, ok := history.NormalizeShipRow(history.RawRow{
		"MoldID":   "1",
		"ShipDate": "2025-03-03",
		"Date":     "2025-01-01",
	})
	require.True(t, ok)
	assert.Equal(t, "2025-03-03", ship.RawDate, "en shiplog gana ShipDate")
}

func TestNormalizeShipRow_CamposDeCompania(t *testing.T) {
	ship, ok := history.NormalizeShipRow(history.RawRow{
		"ShipID":        "77",
		"MoldID":        "200",
		"FromCompanyID": "2",
		"ToCompanyID":   "9",
		"EmployeeName":  "Nguyễn Văn A",
	})
	require.True(t, ok)
	assert.Equal(t, "77", ship.ShipID)
	assert.Equal(t, "2", ship.FromCompanyID)
	assert.Equal(t, "9", ship.ToCompanyID)
	assert.Equal(t, "Nguyễn Văn A", ship.HandlerText)
}

func TestNormalizeStatusRow_CamposDeEstado(t *testing.T) {
	st, ok := history.NormalizeStatusRow(history.RawRow{
		"StatusLogID":   "301",
		"CutterID":      "12",
		"Status":        " checkin ",
		"AuditType":     "spot",
		"DestinationID": "D4",
	})
	require.True(t, ok)
	assert.Equal(t, "301", st.LogID)
	assert.Equal(t, "checkin", st.Status)
	assert.Equal(t, "spot", st.AuditType)
	assert.Equal(t, "D4", st.DestinationID)
}
