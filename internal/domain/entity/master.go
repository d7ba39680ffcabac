package entity

// Registros maestros de cambio lento; se usan solo para resolver nombres de
// presentación. Un maestro ausente nunca es error: se cae al id crudo.

// ItemRecord un molde o una cuchilla del catálogo.
type ItemRecord struct {
	ID   string
	Code string
	Name string
}

// CompanyRecord una compañía (la propia u otra planta/proveedor).
type CompanyRecord struct {
	ID        string
	ShortName string
	Name      string
}

// DisplayName nombre corto si existe, si no el largo, si no el id.
func (c CompanyRecord) DisplayName() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// EmployeeRecord un empleado que manipula ítems.
type EmployeeRecord struct {
	ID        string
	ShortName string
	FullName  string
}

// DisplayName nombre corto si existe, si no el completo, si no el id.
func (e EmployeeRecord) DisplayName() string {
	if e.ShortName != "" {
		return e.ShortName
	}
	if e.FullName != "" {
		return e.FullName
	}
	return e.ID
}

// DestinationRecord un destino de envío fuera del catálogo de compañías (opcional).
type DestinationRecord struct {
	ID   string
	Name string
}

// MasterRecords snapshot completo de maestros leído junto con las fuentes.
type MasterRecords struct {
	Molds        []ItemRecord
	Cutters      []ItemRecord
	Companies    []CompanyRecord
	Employees    []EmployeeRecord
	Destinations []DestinationRecord // opcional; puede venir vacío
}
