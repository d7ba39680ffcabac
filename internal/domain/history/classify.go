package history

import (
	"strings"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

// Clasificadores por fuente: funciones puras fila normalizada -> ActionKind,
// sin efectos ni dependencia de los maestros. Una fila inclasificable nunca
// lanza error: resuelve a OTHER (o se suprime, en el caso no-op del
// locationlog). La precedencia está expresada como listas ordenadas de reglas
// para que sea auditable y testeable regla por regla, no como condicionales
// anidados.

// Sets de keywords para el escaneo de notas. Las fuentes mezclan vietnamita e
// inglés; se comparan con Fold (NFC + minúsculas).
var (
	auditKeywords  = []string{"audit", "kiểm kê", "kiểm kho"}
	shipKeywords   = []string{"ship", "gửi", "xuất"}
	returnKeywords = []string{"return", "nhận", "trả", "nhập"}
	moveKeywords   = []string{"move", "chuyển"}
)

// ClassifyLocation clasifica una fila del locationlog.
// Siempre LOCATION_CHANGE, salvo supresión no-op: si ambos racks están vacíos
// o el viejo es exactamente igual al nuevo, no se emite evento (ok=false).
// Todo LOCATION_CHANGE emitido representa un cambio real — invariante crítico.
func ClassifyLocation(r entity.LocationRow) (entity.ActionKind, bool) {
	if r.OldRack == "" && r.NewRack == "" {
		return "", false
	}
	if r.OldRack == r.NewRack {
		return "", false
	}
	return entity.ActionLocationChange, true
}

// shipRule una regla del clasificador de envíos; la primera que matchea gana.
type shipRule struct {
	name  string
	match func(r entity.ShipRow, homeID string) bool
	kind  entity.ActionKind
}

var shipRules = []shipRule{
	// Regla primaria: el par (origen, destino) contra la compañía propia.
	{
		name: "ambos extremos ajenos -> traslado lateral",
		match: func(r entity.ShipRow, homeID string) bool {
			return r.FromCompanyID != "" && r.ToCompanyID != "" &&
				r.FromCompanyID != homeID && r.ToCompanyID != homeID
		},
		kind: entity.ActionShipMove,
	},
	{
		name: "origen propio, destino ajeno -> salida",
		match: func(r entity.ShipRow, homeID string) bool {
			return r.FromCompanyID == homeID && homeID != "" &&
				r.ToCompanyID != "" && r.ToCompanyID != homeID
		},
		kind: entity.ActionShipOut,
	},
	{
		name: "destino propio, origen ajeno -> entrada",
		match: func(r entity.ShipRow, homeID string) bool {
			return r.ToCompanyID == homeID && homeID != "" &&
				r.FromCompanyID != "" && r.FromCompanyID != homeID
		},
		kind: entity.ActionShipIn,
	},
	// Fallback por keywords cuando los ids faltan o son ambiguos.
	{
		name: "notas con keyword de envío",
		match: func(r entity.ShipRow, _ string) bool {
			return containsAnyKeyword(r.Notes, shipKeywords)
		},
		kind: entity.ActionShipOut,
	},
	{
		name: "notas con keyword de devolución",
		match: func(r entity.ShipRow, _ string) bool {
			return containsAnyKeyword(r.Notes, returnKeywords)
		},
		kind: entity.ActionShipIn,
	},
	{
		name: "notas con keyword de traslado",
		match: func(r entity.ShipRow, _ string) bool {
			return containsAnyKeyword(r.Notes, moveKeywords)
		},
		kind: entity.ActionShipMove,
	},
	// Último recurso: un destino presente, sin más señal, implica salida.
	{
		name: "solo hay destino -> salida",
		match: func(r entity.ShipRow, _ string) bool {
			return r.ToCompanyID != ""
		},
		kind: entity.ActionShipOut,
	},
}

// ClassifyShip clasifica una fila del shiplog contra la compañía propia
// (homeID inyectado por configuración, nunca una constante del paquete).
func ClassifyShip(r entity.ShipRow, homeID string) entity.ActionKind {
	for _, rule := range shipRules {
		if rule.match(r, homeID) {
			return rule.kind
		}
	}
	return entity.ActionOther
}

// statusRule una regla del clasificador de estados; la primera que matchea gana.
type statusRule struct {
	name  string
	match func(r entity.StatusRow) bool
	kind  entity.ActionKind
}

// statusEquals compara el campo status contra literales, case-insensitive.
func statusEquals(status string, literals ...string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, lit := range literals {
		if s == lit {
			return true
		}
	}
	return false
}

var statusRules = []statusRule{
	{
		name: "campo de auditoría explícito o status 'audit'",
		match: func(r entity.StatusRow) bool {
			return r.AuditType != "" || statusEquals(r.Status, "audit")
		},
		kind: entity.ActionAudit,
	},
	// Precedencia deliberada, no un descuido: un check-in cuyas notas hablan de
	// auditoría se registró durante un conteo, así que AUDIT gana sobre CHECKIN.
	{
		name: "check-in con keyword de auditoría en notas",
		match: func(r entity.StatusRow) bool {
			return statusEquals(r.Status, "in", "checkin", "check_in") &&
				containsAnyKeyword(r.Notes, auditKeywords)
		},
		kind: entity.ActionAudit,
	},
	{
		name: "status de entrada",
		match: func(r entity.StatusRow) bool {
			return statusEquals(r.Status, "in", "checkin", "check_in")
		},
		kind: entity.ActionCheckin,
	},
	{
		name: "status de salida",
		match: func(r entity.StatusRow) bool {
			return statusEquals(r.Status, "out", "checkout", "check_out")
		},
		kind: entity.ActionCheckout,
	},
	{
		name: "notas con keyword de devolución",
		match: func(r entity.StatusRow) bool {
			return containsAnyKeyword(r.Notes, returnKeywords)
		},
		kind: entity.ActionShipIn,
	},
	{
		name: "notas con keyword de envío",
		match: func(r entity.StatusRow) bool {
			return containsAnyKeyword(r.Notes, shipKeywords)
		},
		kind: entity.ActionShipOut,
	},
}

// ClassifyStatus clasifica una fila del statuslog por precedencia estricta.
func ClassifyStatus(r entity.StatusRow) entity.ActionKind {
	for _, rule := range statusRules {
		if rule.match(r) {
			return rule.kind
		}
	}
	return entity.ActionOther
}
