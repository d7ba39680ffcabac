package history_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphistory "github.com/tu-usuario/historial-almacen/internal/application/history"
	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

func TestExportRows_OrdenDeColumnasYFormatos(t *testing.T) {
	events := []entity.MovementEvent{
		evento("1", entity.ActionLocationChange, "2025-06-01 08:30:00", func(e *entity.MovementEvent) {
			e.FromLocation, e.ToLocation = "3-2", "5-1"
			e.Notes = "reacomodo"
			e.HandlerName = "N.V.A"
		}),
		evento("2", entity.ActionShipOut, "2025-06-02 10:00:00", func(e *entity.MovementEvent) {
			e.FromCompanyName, e.ToCompanyName = "Planta A", "Xưởng mạ B"
		}),
	}
	rows := apphistory.ExportRows(events)
	require.Len(t, rows, 2)

	loc := rows[0]
	assert.Equal(t, "01/06/2025 08:30", loc.Date, "fecha humana, no ISO")
	assert.Equal(t, "Cambio de ubicación", loc.Action)
	assert.Equal(t, "3-2", loc.From, "un cambio de ubicación exporta racks")
	assert.Equal(t, "5-1", loc.To)

	ship := rows[1]
	assert.Equal(t, "Envío", ship.Action)
	assert.Equal(t, "Planta A", ship.From, "un envío exporta compañías")
	assert.Equal(t, "Xưởng mạ B", ship.To)
}

func TestWriteCSV_BOMYEncabezado(t *testing.T) {
	var buf bytes.Buffer
	rows := apphistory.ExportRows([]entity.MovementEvent{
		evento("1", entity.ActionAudit, "2025-06-01 08:00:00"),
	})
	require.NoError(t, apphistory.WriteCSV(&buf, rows))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}),
		"el CSV lleva BOM para que la hoja de cálculo detecte UTF-8")

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Fecha", "Código", "Nombre", "Acción", "Desde", "Hasta", "Notas", "Responsable"}, records[0])
	assert.Equal(t, "01/06/2025 08:00", records[1][0])
	assert.Equal(t, "Auditoría", records[1][3])
}

func TestWriteCSV_SinFilas_SoloEncabezado(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, apphistory.WriteCSV(&buf, nil))
	content := strings.TrimPrefix(buf.String(), "\uFEFF")
	assert.Equal(t, 1, strings.Count(content, "\n"))
	assert.True(t, strings.HasPrefix(content, "Fecha,"))
}

func TestActionLabel_AccionDesconocida_CaeAlCodigo(t *testing.T) {
	assert.Equal(t, "RARA", apphistory.ActionLabel(entity.ActionKind("RARA")))
}
