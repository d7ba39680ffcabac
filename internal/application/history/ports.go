package history

import (
	"context"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
)

// SourceProvider abstrae de dónde salen las filas crudas de los tres logs y
// el snapshot de maestros (archivos CSV, tablas PostgreSQL, ...). Cada Fetch
// respeta el contexto: un refresh reemplazado cancela sus lecturas en vuelo.
type SourceProvider interface {
	FetchLocationRows(ctx context.Context) ([]domhistory.RawRow, error)
	FetchShipRows(ctx context.Context) ([]domhistory.RawRow, error)
	FetchStatusRows(ctx context.Context) ([]domhistory.RawRow, error)
	FetchMasterRecords(ctx context.Context) (entity.MasterRecords, error)
}
