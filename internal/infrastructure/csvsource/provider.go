// Package csvsource implementa el SourceProvider sobre un directorio de
// archivos CSV exportados del sistema legado (un archivo por log y por
// maestro). Es el modo por defecto; el modo postgres consulta las mismas
// tablas en vivo.
package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
)

// Nombres de archivo esperados dentro del directorio de fuentes.
const (
	fileLocationLog  = "locationlog.csv"
	fileShipLog      = "shiplog.csv"
	fileStatusLog    = "statuslog.csv"
	fileMolds        = "molds.csv"
	fileCutters      = "cutters.csv"
	fileCompanies    = "companies.csv"
	fileEmployees    = "employees.csv"
	fileDestinations = "destinations.csv" // opcional
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Provider SourceProvider sobre archivos CSV.
type Provider struct {
	dir string
}

// New construye el provider sobre un directorio.
func New(dir string) *Provider {
	return &Provider{dir: dir}
}

// readRows lee un CSV como filas crudas columna->valor. Tolera BOM inicial y
// filas con distinta cantidad de campos (los sobrantes se ignoran, los
// faltantes quedan vacíos).
func (p *Provider) readRows(ctx context.Context, name string) ([]domhistory.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(p.dir, name))
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", name, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsear %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]domhistory.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(domhistory.RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchLocationRows filas crudas del log de ubicaciones.
func (p *Provider) FetchLocationRows(ctx context.Context) ([]domhistory.RawRow, error) {
	return p.readRows(ctx, fileLocationLog)
}

// FetchShipRows filas crudas del log de envíos.
func (p *Provider) FetchShipRows(ctx context.Context) ([]domhistory.RawRow, error) {
	return p.readRows(ctx, fileShipLog)
}

// FetchStatusRows filas crudas del log de estados.
func (p *Provider) FetchStatusRows(ctx context.Context) ([]domhistory.RawRow, error) {
	return p.readRows(ctx, fileStatusLog)
}

// readOptional como readRows pero un archivo ausente devuelve cero filas.
func (p *Provider) readOptional(ctx context.Context, name string) ([]domhistory.RawRow, error) {
	rows, err := p.readRows(ctx, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return rows, err
}

// FetchMasterRecords lee los cuatro maestros; destinations es opcional.
func (p *Provider) FetchMasterRecords(ctx context.Context) (entity.MasterRecords, error) {
	var m entity.MasterRecords

	molds, err := p.readRows(ctx, fileMolds)
	if err != nil {
		return m, err
	}
	cutters, err := p.readRows(ctx, fileCutters)
	if err != nil {
		return m, err
	}
	companies, err := p.readRows(ctx, fileCompanies)
	if err != nil {
		return m, err
	}
	employees, err := p.readRows(ctx, fileEmployees)
	if err != nil {
		return m, err
	}
	destinations, err := p.readOptional(ctx, fileDestinations)
	if err != nil {
		return m, err
	}

	for _, r := range molds {
		m.Molds = append(m.Molds, entity.ItemRecord{
			ID: r["ID"], Code: r["Code"], Name: r["Name"],
		})
	}
	for _, r := range cutters {
		m.Cutters = append(m.Cutters, entity.ItemRecord{
			ID: r["ID"], Code: r["Code"], Name: r["Name"],
		})
	}
	for _, r := range companies {
		m.Companies = append(m.Companies, entity.CompanyRecord{
			ID: r["ID"], ShortName: r["ShortName"], Name: r["Name"],
		})
	}
	for _, r := range employees {
		m.Employees = append(m.Employees, entity.EmployeeRecord{
			ID: r["ID"], ShortName: r["ShortName"], FullName: r["FullName"],
		})
	}
	for _, r := range destinations {
		m.Destinations = append(m.Destinations, entity.DestinationRecord{
			ID: r["ID"], Name: r["Name"],
		})
	}
	return m, nil
}
