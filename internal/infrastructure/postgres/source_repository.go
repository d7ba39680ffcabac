package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apphistory "github.com/tu-usuario/historial-almacen/internal/application/history"
	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
)

var _ apphistory.SourceProvider = (*SourceRepo)(nil)

// Querier subconjunto de pgxpool.Pool usado por el repositorio (permite tests
// con un pool real o un mock).
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SourceRepo SourceProvider sobre las tablas PostgreSQL del sistema legado.
// Solo lecturas: el conjunto reconciliado nunca se persiste, se reconstruye
// desde estas tablas en cada refresh.
type SourceRepo struct {
	q Querier
}

// NewSourceRepository construye el adaptador. Pasar el pool.
func NewSourceRepository(q Querier) *SourceRepo {
	return &SourceRepo{q: q}
}

// scanRawRows materializa un resultado como filas crudas columna->valor, con
// los nombres de columna canónicos que espera el normalizador (via alias SQL).
// Valores NULL quedan como cadena vacía.
func scanRawRows(rows pgx.Rows) ([]domhistory.RawRow, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []domhistory.RawRow
	for rows.Next() {
		values := make([]*string, len(fields))
		dest := make([]any, len(fields))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan fila cruda: %w", err)
		}
		row := make(domhistory.RawRow, len(fields))
		for i, fd := range fields {
			if values[i] != nil {
				row[string(fd.Name)] = *values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SourceRepo) fetchRaw(ctx context.Context, query string) ([]domhistory.RawRow, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanRawRows(rows)
}

// FetchLocationRows filas crudas del log de ubicaciones.
func (r *SourceRepo) FetchLocationRows(ctx context.Context) ([]domhistory.RawRow, error) {
	query := `
		SELECT id::text        AS "LocationLogID",
		       mold_id::text   AS "MoldID",
		       cutter_id::text AS "CutterID",
		       old_rack_layer  AS "OldRackLayer",
		       new_rack_layer  AS "NewRackLayer",
		       employee_id::text AS "EmployeeID",
		       notes           AS "Notes",
		       created_at::text AS "Timestamp"
		FROM location_logs`
	out, err := r.fetchRaw(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leer location_logs: %w", err)
	}
	return out, nil
}

// FetchShipRows filas crudas del log de envíos.
func (r *SourceRepo) FetchShipRows(ctx context.Context) ([]domhistory.RawRow, error) {
	query := `
		SELECT id::text          AS "ShipID",
		       mold_id::text     AS "MoldID",
		       cutter_id::text   AS "CutterID",
		       from_company_id::text AS "FromCompanyID",
		       to_company_id::text   AS "ToCompanyID",
		       employee_id::text AS "EmployeeID",
		       employee_name     AS "EmployeeName",
		       notes             AS "Notes",
		       ship_date::text   AS "ShipDate"
		FROM ship_logs`
	out, err := r.fetchRaw(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leer ship_logs: %w", err)
	}
	return out, nil
}

// FetchStatusRows filas crudas del log de estados.
func (r *SourceRepo) FetchStatusRows(ctx context.Context) ([]domhistory.RawRow, error) {
	query := `
		SELECT id::text          AS "StatusLogID",
		       mold_id::text     AS "MoldID",
		       cutter_id::text   AS "CutterID",
		       status            AS "Status",
		       audit_type        AS "AuditType",
		       destination_id::text AS "DestinationID",
		       employee_id::text AS "EmployeeID",
		       notes             AS "Notes",
		       created_at::text  AS "Timestamp"
		FROM status_logs`
	out, err := r.fetchRaw(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leer status_logs: %w", err)
	}
	return out, nil
}

// FetchMasterRecords lee los maestros. La tabla destinations puede no existir
// en instalaciones viejas; su ausencia no es error.
func (r *SourceRepo) FetchMasterRecords(ctx context.Context) (entity.MasterRecords, error) {
	var m entity.MasterRecords

	if err := r.fetchItems(ctx, "molds", &m.Molds); err != nil {
		return m, err
	}
	if err := r.fetchItems(ctx, "cutters", &m.Cutters); err != nil {
		return m, err
	}

	rows, err := r.q.Query(ctx, `SELECT id::text, COALESCE(short_name, ''), COALESCE(name, '') FROM companies`)
	if err != nil {
		return m, fmt.Errorf("leer companies: %w", err)
	}
	for rows.Next() {
		var c entity.CompanyRecord
		if err := rows.Scan(&c.ID, &c.ShortName, &c.Name); err != nil {
			rows.Close()
			return m, fmt.Errorf("scan company: %w", err)
		}
		m.Companies = append(m.Companies, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return m, err
	}

	rows, err = r.q.Query(ctx, `SELECT id::text, COALESCE(short_name, ''), COALESCE(full_name, '') FROM employees`)
	if err != nil {
		return m, fmt.Errorf("leer employees: %w", err)
	}
	for rows.Next() {
		var e entity.EmployeeRecord
		if err := rows.Scan(&e.ID, &e.ShortName, &e.FullName); err != nil {
			rows.Close()
			return m, fmt.Errorf("scan employee: %w", err)
		}
		m.Employees = append(m.Employees, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return m, err
	}

	dests, err := r.fetchDestinations(ctx)
	if err != nil {
		return m, err
	}
	m.Destinations = dests
	return m, nil
}

func (r *SourceRepo) fetchItems(ctx context.Context, table string, dst *[]entity.ItemRecord) error {
	query := fmt.Sprintf(`SELECT id::text, COALESCE(code, ''), COALESCE(name, '') FROM %s`, table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("leer %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ItemRecord
		if err := rows.Scan(&it.ID, &it.Code, &it.Name); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		*dst = append(*dst, it)
	}
	return rows.Err()
}

func (r *SourceRepo) fetchDestinations(ctx context.Context) ([]entity.DestinationRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT id::text, COALESCE(name, '') FROM destinations`)
	if err != nil {
		// 42P01 = undefined_table: instalación sin catálogo de destinos.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
			return nil, nil
		}
		return nil, fmt.Errorf("leer destinations: %w", err)
	}
	defer rows.Close()
	var out []entity.DestinationRecord
	for rows.Next() {
		var d entity.DestinationRecord
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan destination: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
