package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrSourceUnavailable = errors.New("fuentes de historial no disponibles")
	ErrRefreshSuperseded = errors.New("refresh reemplazado por uno más reciente")
	ErrSnapshotNotReady  = errors.New("todavía no hay un snapshot de historial")
)
