package radicados

import (
	"strings"
	"testing"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func exportRows() []bolivar.Result {
	return []bolivar.Result{
		{
			Radicado:          "A-100",
			OK:                true,
			EstadoRaw:         "Nuevo",
			EstadoNormalizado: bolivar.StatusNotWithdrawn,
			Asegurado:         "PEREZ JUAN",
			ConsultedAt:       timezone.Now(),
		},
		{
			Radicado:          "B-200",
			OK:                false,
			EstadoNormalizado: bolivar.StatusNotFound,
			Error:             "portal timeout",
		},
	}
}

func TestSanitizeRowsDropsEmptyRadicados(t *testing.T) {
	rows := SanitizeRows(append(exportRows(), bolivar.Result{Radicado: "   ", EstadoRaw: "Nuevo"}))
	require.Len(t, rows, 2)
	require.Equal(t, "A-100", rows[0].Radicado)
	require.Equal(t, "B-200", rows[1].Radicado)
}

func TestRenderExportCsv(t *testing.T) {
	export, err := RenderExport(FormatCsv, exportRows())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(export.Filename, "radicados_"))
	require.True(t, strings.HasSuffix(export.Filename, ".csv"))
	require.Equal(t, "text/csv; charset=utf-8", export.ContentType)

	body := string(export.Body)
	require.Contains(t, body, "Radicado")
	require.Contains(t, body, "A-100")
	require.Contains(t, body, bolivar.StatusNotWithdrawn)
	require.Contains(t, body, "portal timeout")
}

func TestRenderExportHtml(t *testing.T) {
	export, err := RenderExport(FormatHtml, exportRows())
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(export.Filename, ".html"))
	require.Equal(t, "text/html; charset=utf-8", export.ContentType)
	require.Contains(t, string(export.Body), "<table")
	require.Contains(t, string(export.Body), "A-100")
}

func TestRenderExportInvalidFormat(t *testing.T) {
	_, err := RenderExport(ExportFormat("xlsx"), exportRows())
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRenderExportNoRows(t *testing.T) {
	_, err := RenderExport(FormatCsv, nil)
	require.ErrorIs(t, err, ErrNoRows)

	_, err = RenderExport(FormatCsv, []bolivar.Result{{Radicado: " "}})
	require.ErrorIs(t, err, ErrNoRows)
}
