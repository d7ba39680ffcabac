package history

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Las notas llegan mezcladas en vietnamita e inglés, a veces con diacríticos
// descompuestos (NFD) según el cliente que las escribió. Todo escaneo de
// keywords y todo match case-insensitive pasa por Fold para que "gửi" compare
// igual sin importar la forma Unicode de origen.

// Fold normaliza a NFC y minúsculas para comparación.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// ContainsFold reporta si s contiene sub, ignorando mayúsculas y forma Unicode.
// Con sub vacío devuelve false: un filtro vacío no debe matchear nada por accidente.
func ContainsFold(s, sub string) bool {
	if sub == "" {
		return false
	}
	return strings.Contains(Fold(s), Fold(sub))
}

// containsAnyKeyword reporta si el texto contiene alguno de los keywords del set.
func containsAnyKeyword(text string, keywords []string) bool {
	folded := Fold(text)
	for _, kw := range keywords {
		if strings.Contains(folded, Fold(kw)) {
			return true
		}
	}
	return false
}

// CollapseSpaces normaliza los espacios internos de un texto libre (notas).
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
