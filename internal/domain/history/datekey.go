package history

import (
	"strings"
	"time"
)

// Formatos de fecha observados en las fuentes, en orden de prueba.
// Los formatos con día primero van antes que los ISO cortos para no
// reinterpretar "02/03/2025" como febrero.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseEventTime intenta parsear el timestamp crudo de una fila.
// Devuelve ok=false si ningún formato conocido aplica; nunca falla.
func ParseEventTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateKey deriva la clave YYYY-MM-DD usada en filtros de rango y desempates de
// orden. Invariante: o es una fecha ISO válida de ancho fijo, o cadena vacía —
// nunca una fecha malformada.
func DateKey(raw string) string {
	t, ok := ParseEventTime(raw)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatHuman renderiza la fecha en el formato fijo de exportación (día primero),
// no en ISO crudo. Si el valor no se puede parsear se conserva el texto original.
func FormatHuman(raw string) string {
	t, ok := ParseEventTime(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return t.Format("02/01/2006 15:04")
}
