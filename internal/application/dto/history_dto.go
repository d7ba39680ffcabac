package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

// HistoryQueryRequest parámetros de consulta del historial. Todos opcionales;
// un parámetro vacío desactiva su predicado.
type HistoryQueryRequest struct {
	DateFrom  string `query:"date_from"`  // YYYY-MM-DD inclusivo
	DateTo    string `query:"date_to"`    // YYYY-MM-DD inclusivo
	Action    string `query:"action"`     // AUDIT, CHECKIN, ...
	HandlerID string `query:"handler_id"`
	Rack      string `query:"rack"`
	Company   string `query:"company"`
	Keyword   string `query:"q"`
	SortKey   string `query:"sort"` // date | item | action | fromto | notes | handler
	SortDir   string `query:"dir"`  // asc | desc (default desc para date)
	Page      int    `query:"page"` // default 1
}

// MovementEventDTO proyección JSON de un evento reconciliado.
type MovementEventDTO struct {
	EventID         string `json:"event_id"`
	Source          string `json:"source"`
	Action          string `json:"action"`
	ActionLabel     string `json:"action_label"`
	ItemType        string `json:"item_type"`
	ItemID          string `json:"item_id"`
	ItemCode        string `json:"item_code"`
	ItemName        string `json:"item_name"`
	EventDate       string `json:"event_date"`
	EventDateKey    string `json:"event_date_key,omitempty"`
	FromLocation    string `json:"from_location,omitempty"`
	ToLocation      string `json:"to_location,omitempty"`
	FromCompanyID   string `json:"from_company_id,omitempty"`
	ToCompanyID     string `json:"to_company_id,omitempty"`
	FromCompanyName string `json:"from_company_name,omitempty"`
	ToCompanyName   string `json:"to_company_name,omitempty"`
	Notes           string `json:"notes,omitempty"`
	HandlerID       string `json:"handler_id,omitempty"`
	HandlerName     string `json:"handler_name,omitempty"`
}

// HistoryPageDTO una página del historial más metadatos del snapshot.
type HistoryPageDTO struct {
	Items       []MovementEventDTO `json:"items"`
	TotalCount  int                `json:"total_count"`
	TotalPages  int                `json:"total_pages"`
	CurrentPage int                `json:"current_page"`
	SnapshotID  string             `json:"snapshot_id"`
	RefreshedAt string             `json:"refreshed_at"`
}

// SummaryDTO tarjetas del tablero sobre el conjunto filtrado.
type SummaryDTO struct {
	Total    int             `json:"total"`
	Audit    int             `json:"audit"`
	Move     int             `json:"move"`
	InOut    int             `json:"in_out"`
	AuditPct decimal.Decimal `json:"audit_pct"`
	MovePct  decimal.Decimal `json:"move_pct"`
	InOutPct decimal.Decimal `json:"in_out_pct"`
}

// OptionDTO una opción id/etiqueta para poblar selects de filtros.
type OptionDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// HistoryMetaDTO catálogos para la barra de filtros de la vista.
type HistoryMetaDTO struct {
	Actions   []OptionDTO `json:"actions"`
	Companies []OptionDTO `json:"companies"`
	Handlers  []OptionDTO `json:"handlers"`
}

// RefreshResultDTO resultado de un refresh disparado por API.
type RefreshResultDTO struct {
	SnapshotID  string `json:"snapshot_id"`
	EventCount  int    `json:"event_count"`
	RefreshedAt string `json:"refreshed_at"`
}

// EventToDTO proyecta la entidad con su etiqueta de acción ya resuelta.
func EventToDTO(e entity.MovementEvent, actionLabel string) MovementEventDTO {
	return MovementEventDTO{
		EventID:         e.EventID,
		Source:          e.Source,
		Action:          string(e.Action),
		ActionLabel:     actionLabel,
		ItemType:        e.ItemType,
		ItemID:          e.ItemID,
		ItemCode:        e.ItemCode,
		ItemName:        e.ItemName,
		EventDate:       e.EventDate,
		EventDateKey:    e.EventDateKey,
		FromLocation:    e.FromLocation,
		ToLocation:      e.ToLocation,
		FromCompanyID:   e.FromCompanyID,
		ToCompanyID:     e.ToCompanyID,
		FromCompanyName: e.FromCompanyName,
		ToCompanyName:   e.ToCompanyName,
		Notes:           e.Notes,
		HandlerID:       e.HandlerID,
		HandlerName:     e.HandlerName,
	}
}
