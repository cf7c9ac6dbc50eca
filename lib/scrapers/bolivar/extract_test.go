package bolivar

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

const resultPage = `<html><body>
<form id="FormIndex">
<table id="FormIndex:datosSolicitud">
  <tr>
    <td><label>Radicado:</label></td><td><label>A-100</label></td>
  </tr>
  <tr>
    <td><label>Estado Siniestro:</label></td><td><label>Nuevo</label></td>
  </tr>
  <tr>
    <td><label>Inquilino:</label></td><td><label>PEREZ JUAN</label></td>
  </tr>
</table>
<table id="FormIndex:motivosObjeciones">
  <tr><td>No se encontraron resultados.</td></tr>
</table>
</form>
</body></html>`

func TestExtractClaimInfo(t *testing.T) {
	estado, asegurado, tier := ExtractClaimInfo(resultPage)
	require.Equal(t, "Nuevo", estado)
	require.Equal(t, "PEREZ JUAN", asegurado)
	require.Equal(t, TierDatosSolicitud, tier)
}

func TestExtractClaimInfoFromPartialResponse(t *testing.T) {
	estado, asegurado, tier := ExtractClaimInfo(partialEnvelope)
	require.Equal(t, "Nuevo", estado)
	require.Equal(t, "", asegurado)
	require.Equal(t, TierDatosSolicitud, tier)
}

func TestExtractClaimInfoTableAbsent(t *testing.T) {
	estado, asegurado, tier := ExtractClaimInfo(`<html><body><p>No existe el radicado.</p></body></html>`)
	require.Equal(t, "", estado)
	require.Equal(t, "", asegurado)
	require.Equal(t, TierNone, tier)
}

func TestExtractClaimInfoTableWithoutStatusLabel(t *testing.T) {
	markup := `<table id="FormIndex:datosSolicitud">
	  <tr><td><label>Asegurado:</label></td><td><label>PEREZ JUAN</label></td></tr>
	</table>`
	estado, asegurado, tier := ExtractClaimInfo(markup)
	require.Equal(t, "", estado)
	require.Equal(t, "PEREZ JUAN", asegurado)
	require.Equal(t, TierNone, tier)
}

func TestSearchStatusPrefersRequestDataTable(t *testing.T) {
	value, tier := SearchStatus(resultPage)
	require.Equal(t, "Nuevo", value)
	require.Equal(t, TierDatosSolicitud, tier)
}

// the unrelated objections panel says "No se encontraron resultados"
// on every screen; it only means not-found when the data table itself
// is missing
func TestSearchStatusNoResultsOnlyWithoutTable(t *testing.T) {
	value, tier := SearchStatus(`<html><body><p>No se encontraron resultados para la consulta.</p></body></html>`)
	require.Equal(t, StatusNotFound, value)
	require.Equal(t, TierNoResults, tier)
}

func TestSearchStatusInfoTable(t *testing.T) {
	markup := `<html><body>
	<table id="tablaInformacionGeneral">
	  <tr><td>Fecha</td><td>2024-01-01</td></tr>
	  <tr><td>Estado actual</td><td>Reportado</td></tr>
	</table>
	</body></html>`
	value, tier := SearchStatus(markup)
	require.Equal(t, "Reportado", value)
	require.Equal(t, TierInfoTable, tier)
}

// non-table containers are matched on class as well as id, and a
// container without a status row must not shadow a later one that has it
func TestSearchStatusInfoContainerByClass(t *testing.T) {
	markup := `<html><body>
	<div class="panel informacionBasica">
	  <table><tr><td>Radicado</td><td>A-100</td></tr></table>
	</div>
	<div class="panel informacionSolicitud">
	  <table><tr><td>Estado actual</td><td>Desistido</td></tr></table>
	</div>
	</body></html>`
	value, tier := SearchStatus(markup)
	require.Equal(t, "Desistido", value)
	require.Equal(t, TierInfoTable, tier)
}

func TestSearchStatusProximity(t *testing.T) {
	markup := `<html><body><div>
	<span>Estado</span><span>Desistido</span>
	</div></body></html>`
	value, tier := SearchStatus(markup)
	require.Equal(t, "Desistido", value)
	require.Equal(t, TierProximity, tier)
}

func TestSearchStatusKeywordRegex(t *testing.T) {
	value, tier := SearchStatus(`<html><body><p>La solicitud fue desistida por el cliente.</p></body></html>`)
	require.Equal(t, "desistida", value)
	require.Equal(t, TierKeywordRegex, tier)
}

func TestSearchStatusExcerptIsCapped(t *testing.T) {
	long := strings.Repeat("texto sin nada util ", 30)
	value, tier := SearchStatus(`<html><body><p>` + long + `</p></body></html>`)
	require.Equal(t, TierExcerpt, tier)
	require.LessOrEqual(t, utf8.RuneCountInString(value), excerptMaxLen)
	require.True(t, strings.HasPrefix(value, "texto sin nada util"))
}

func TestSearchStatusEmptyPage(t *testing.T) {
	value, tier := SearchStatus("")
	require.Equal(t, StatusNotFound, value)
	require.Equal(t, TierNone, tier)
}
