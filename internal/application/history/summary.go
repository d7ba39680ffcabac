package history

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Summary conteos por categoría para las tarjetas del tablero. Reducción pura
// sobre el conjunto ya filtrado (no paginado), sin estado oculto.
type Summary struct {
	Total int
	Audit int
	// Move cuenta solo LOCATION_CHANGE. Entre las dos definiciones que
	// circularon (con y sin SHIP_MOVE) se fija esta: un traslado lateral entre
	// terceros ya cuenta en la familia de envíos y sumarlo aquí lo duplicaría.
	Move  int
	InOut int // CHECKIN + CHECKOUT + SHIP_IN + SHIP_OUT
}

// Summarize computa los conteos por categoría.
func Summarize(events []entity.MovementEvent) Summary {
	s := Summary{Total: len(events)}
	for i := range events {
		switch events[i].Action {
		case entity.ActionAudit:
			s.Audit++
		case entity.ActionLocationChange:
			s.Move++
		case entity.ActionCheckin, entity.ActionCheckout, entity.ActionShipIn, entity.ActionShipOut:
			s.InOut++
		}
	}
	return s
}

// Shares participación porcentual de cada tarjeta sobre el total.
type Shares struct {
	AuditPct decimal.Decimal
	MovePct  decimal.Decimal
	InOutPct decimal.Decimal
}

// Shares devuelve los porcentajes redondeados a 2 decimales; con total cero
// todo es cero.
func (s Summary) Shares() Shares {
	if s.Total == 0 {
		return Shares{AuditPct: decimal.Zero, MovePct: decimal.Zero, InOutPct: decimal.Zero}
	}
	total := decimal.NewFromInt(int64(s.Total))
	pct := func(n int) decimal.Decimal {
		return decimal.NewFromInt(int64(n)).Div(total).Mul(hundred).Round(2)
	}
	return Shares{
		AuditPct: pct(s.Audit),
		MovePct:  pct(s.Move),
		InOutPct: pct(s.InOut),
	}
}
