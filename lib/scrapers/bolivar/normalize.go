package bolivar

import (
	"strings"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/textutil"
)

// Canonical status vocabulary. Anything the rules below don't recognize
// passes through as the upper-cased literal text from the portal.
const (
	StatusNotWithdrawn = "SIN DESISTIR"
	StatusWithdrawn    = "DESISTIDO"
	StatusReported     = "REPORTADO"
	StatusNotFound     = "NO ENCONTRADO"
)

// NormalizeStatus maps the portal's free-text claim status onto the
// canonical vocabulary. Pure function.
func NormalizeStatus(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return StatusNotFound
	}

	lower := strings.ToLower(text)
	if lower == "nuevo" {
		return StatusNotWithdrawn
	}
	if strings.Contains(lower, "desist") {
		return StatusWithdrawn
	}
	if strings.Contains(lower, "report") {
		return StatusReported
	}
	if strings.Contains(lower, "sin desist") ||
		strings.Contains(lower, "no ha pagado") ||
		strings.Contains(lower, "sin pagar") {
		return StatusNotWithdrawn
	}

	return strings.ToUpper(textutil.CollapseSpace(text))
}
