package entity

// Fuentes de filas crudas del historial.
const (
	SourceLocationLog = "locationlog"
	SourceShipLog     = "shiplog"
	SourceStatusLog   = "statuslog"
)

// ActionKind acción de negocio asignada a cada evento (taxonomía fija).
type ActionKind string

const (
	ActionAudit          ActionKind = "AUDIT"
	ActionCheckin        ActionKind = "CHECKIN"
	ActionCheckout       ActionKind = "CHECKOUT"
	ActionLocationChange ActionKind = "LOCATION_CHANGE"
	ActionShipOut        ActionKind = "SHIP_OUT"
	ActionShipIn         ActionKind = "SHIP_IN"
	ActionShipMove       ActionKind = "SHIP_MOVE"
	ActionOther          ActionKind = "OTHER"
)

// ActionKinds todas las acciones, en el orden que se muestran en filtros.
var ActionKinds = []ActionKind{
	ActionAudit, ActionCheckin, ActionCheckout, ActionLocationChange,
	ActionShipOut, ActionShipIn, ActionShipMove, ActionOther,
}

// Tipos de ítem.
const (
	ItemTypeMold    = "mold"
	ItemTypeCutter  = "cutter"
	ItemTypeUnknown = "unknown"
)

// MovementEvent un registro reconciliado y clasificado del historial de movimientos.
// Inmutable: el conjunto completo se reconstruye desde las fuentes en cada refresh,
// nunca se edita un evento en sitio.
//
// Invariantes: Action siempre tiene exactamente un valor; ItemID nunca vacío
// (las filas sin molde ni cuchilla se descartan al normalizar); EventDateKey es
// YYYY-MM-DD válido o cadena vacía; los nombres resueltos nunca son nil, como
// mínimo caen al id crudo.
type MovementEvent struct {
	EventID string // id único con prefijo de fuente: "L"+LocationLogID, "S"+ShipID, "ST"+StatusLogID
	Source  string // SourceLocationLog | SourceShipLog | SourceStatusLog
	Action  ActionKind

	ItemType string // mold | cutter | unknown
	ItemID   string
	ItemCode string
	ItemName string

	EventDate    string // timestamp crudo, se conserva el formato de origen
	EventDateKey string // YYYY-MM-DD derivado; vacío si no se pudo parsear

	// Solo para LOCATION_CHANGE: etiquetas de rack-capa.
	FromLocation string
	ToLocation   string

	// Para movimientos entre compañías (shiplog y statuslog con destino).
	FromCompanyID   string
	ToCompanyID     string
	FromCompanyName string
	ToCompanyName   string

	Notes string // espacios normalizados

	HandlerID   string
	HandlerName string
}
