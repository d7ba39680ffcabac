package entity

// Filas normalizadas por fuente: campos recortados, con valores por defecto y
// flags HasMold/HasCutter derivados. Son el resultado del Row Normalizer y la
// entrada del clasificador y del materializador.

// LocationRow una fila de cambio de ubicación (rack-capa) ya normalizada.
type LocationRow struct {
	LogID      string
	ItemType   string // mold | cutter
	ItemID     string
	OldRack    string
	NewRack    string
	EmployeeID string
	Notes      string
	RawDate    string
}

// ShipRow una fila de envío entre compañías ya normalizada.
type ShipRow struct {
	ShipID        string
	ItemType      string
	ItemID        string
	FromCompanyID string
	ToCompanyID   string
	EmployeeID    string
	HandlerText   string // nombre libre del responsable si la fuente lo trae
	Notes         string
	RawDate       string
}

// StatusRow una fila genérica de evento de estado ya normalizada.
type StatusRow struct {
	LogID         string
	ItemType      string
	ItemID        string
	Status        string
	AuditType     string
	DestinationID string
	EmployeeID    string
	HandlerText   string
	Notes         string
	RawDate       string
}
