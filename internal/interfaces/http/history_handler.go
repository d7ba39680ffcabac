package http

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/historial-almacen/internal/application/dto"
	apphistory "github.com/tu-usuario/historial-almacen/internal/application/history"
	"github.com/tu-usuario/historial-almacen/internal/domain"
	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
)

// HistoryHandler maneja los endpoints del historial de movimientos.
type HistoryHandler struct {
	uc       *apphistory.ReconcileUseCase
	pageSize int
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *apphistory.ReconcileUseCase, pageSize int) *HistoryHandler {
	return &HistoryHandler{uc: uc, pageSize: pageSize}
}

// snapshot devuelve el snapshot vigente o un 503 si todavía no hubo refresh
// exitoso. El cliente debe disparar POST /refresh o reintentar.
func (h *HistoryHandler) snapshot(c *fiber.Ctx) (*apphistory.Snapshot, error) {
	snap := h.uc.Current()
	if snap == nil {
		return nil, c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "SNAPSHOT_NOT_READY", Message: domain.ErrSnapshotNotReady.Error(),
		})
	}
	return snap, nil
}

// parseQuery traduce los parámetros de consulta a filtro, orden y página.
func parseQuery(c *fiber.Ctx) (apphistory.Filter, apphistory.Sort, int, error) {
	var req dto.HistoryQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return apphistory.Filter{}, apphistory.Sort{}, 0, err
	}

	f := apphistory.Filter{
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Action:    req.Action,
		HandlerID: req.HandlerID,
		Rack:      req.Rack,
		Company:   req.Company,
		Keyword:   req.Keyword,
	}

	s := apphistory.DefaultSort()
	if req.SortKey != "" {
		s = apphistory.Sort{Key: req.SortKey, Desc: req.SortDir != "asc"}
	}
	return f, s, req.Page, nil
}

// Query godoc
// @Summary      Página del historial de movimientos
// @Description  Filtra, ordena y pagina el conjunto reconciliado vigente.
// @Tags         history
// @Produce      json
// @Param        date_from   query  string  false  "Fecha mínima inclusiva (YYYY-MM-DD)."
// @Param        date_to     query  string  false  "Fecha máxima inclusiva (YYYY-MM-DD)."
// @Param        action      query  string  false  "Tipo de acción exacto (AUDIT, CHECKIN, ...)."
// @Param        handler_id  query  string  false  "ID exacto del responsable."
// @Param        rack        query  string  false  "Subcadena sobre rack origen/destino."
// @Param        company     query  string  false  "Subcadena sobre compañía origen/destino."
// @Param        q           query  string  false  "Búsqueda libre sobre los campos del evento."
// @Param        sort        query  string  false  "Clave de orden: date|item|action|fromto|notes|handler."
// @Param        dir         query  string  false  "asc o desc (default desc)."
// @Param        page        query  int     false  "Página 1-based; se clampa al rango válido."
// @Success      200  {object}  dto.HistoryPageDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) Query(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}

	f, s, page, err := parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	result := apphistory.Query(snap.Events, f, s, page, h.pageSize)

	items := make([]dto.MovementEventDTO, 0, len(result.PageItems))
	for _, e := range result.PageItems {
		items = append(items, dto.EventToDTO(e, apphistory.ActionLabel(e.Action)))
	}
	return c.JSON(dto.HistoryPageDTO{
		Items:       items,
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		SnapshotID:  snap.ID,
		RefreshedAt: snap.RefreshedAt.Format(time.RFC3339),
	})
}

// Summary godoc
// @Summary      Tarjetas de resumen del historial
// @Description  Conteos y porcentajes por categoría sobre el conjunto filtrado
//               completo (no la página visible).
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/history/summary [get]
func (h *HistoryHandler) Summary(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}

	f, _, _, err := parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	sum := apphistory.Summarize(f.Apply(snap.Events))
	shares := sum.Shares()
	return c.JSON(dto.SummaryDTO{
		Total:    sum.Total,
		Audit:    sum.Audit,
		Move:     sum.Move,
		InOut:    sum.InOut,
		AuditPct: shares.AuditPct,
		MovePct:  shares.MovePct,
		InOutPct: shares.InOutPct,
	})
}

// Export godoc
// @Summary      Exporta el historial filtrado como CSV
// @Description  Todo el conjunto filtrado y ordenado, sin paginar, con BOM
//               UTF-8 y fechas en formato dd/MM/yyyy HH:mm.
// @Tags         history
// @Produce      text/csv
// @Success      200  {string}  string  "archivo CSV"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/history/export.csv [get]
func (h *HistoryHandler) Export(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}

	f, s, _, err := parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	sorted := apphistory.SortEvents(f.Apply(snap.Events), s)
	var buf bytes.Buffer
	if err := apphistory.WriteCSV(&buf, apphistory.ExportRows(sorted)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "EXPORT_FAILED", Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="historial.csv"`)
	return c.Send(buf.Bytes())
}

// Refresh godoc
// @Summary      Reconstruye el conjunto reconciliado desde las fuentes
// @Description  Relee los tres logs y los maestros y publica un snapshot nuevo.
//               Si otro refresh más nuevo publicó primero, devuelve 409 y el
//               snapshot vigente queda intacto.
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.RefreshResultDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/history/refresh [post]
func (h *HistoryHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.uc.Refresh(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRefreshSuperseded) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "REFRESH_SUPERSEDED", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "SOURCE_UNAVAILABLE", Message: err.Error(),
		})
	}
	return c.JSON(dto.RefreshResultDTO{
		SnapshotID:  snap.ID,
		EventCount:  len(snap.Events),
		RefreshedAt: snap.RefreshedAt.Format(time.RFC3339),
	})
}

// Meta godoc
// @Summary      Catálogos para la barra de filtros
// @Description  Acciones con etiqueta, compañías y responsables del snapshot
//               vigente.
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.HistoryMetaDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/history/meta [get]
func (h *HistoryHandler) Meta(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}

	meta := dto.HistoryMetaDTO{
		Actions:   make([]dto.OptionDTO, 0, len(entity.ActionKinds)),
		Companies: []dto.OptionDTO{},
		Handlers:  []dto.OptionDTO{},
	}
	for _, a := range entity.ActionKinds {
		meta.Actions = append(meta.Actions, dto.OptionDTO{
			ID: string(a), Label: apphistory.ActionLabel(a),
		})
	}
	for _, comp := range snap.Index.Companies() {
		meta.Companies = append(meta.Companies, dto.OptionDTO{
			ID: comp.ID, Label: comp.DisplayName(),
		})
	}
	for _, emp := range snap.Index.Employees() {
		meta.Handlers = append(meta.Handlers, dto.OptionDTO{
			ID: emp.ID, Label: emp.DisplayName(),
		})
	}
	return c.JSON(meta)
}
