package radicados

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ExportFormat string

const (
	FormatCsv  ExportFormat = "csv"
	FormatHtml ExportFormat = "html"
)

var (
	ErrInvalidFormat = errors.New("unsupported export format")
	ErrNoRows        = errors.New("no rows to export")
)

// Export is a rendered download: the body plus the metadata the HTTP
// layer needs to serve it as an attachment.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// SanitizeRows keeps only the functional fields of each result and
// drops rows without a radicado, so half-filled rows pasted back by a
// client can't produce junk lines in the export.
func SanitizeRows(results []bolivar.Result) []bolivar.Result {
	var rows []bolivar.Result
	for _, res := range results {
		radicado := strings.TrimSpace(res.Radicado)
		if radicado == "" {
			continue
		}
		rows = append(rows, bolivar.Result{
			Radicado:          radicado,
			OK:                res.OK,
			EstadoRaw:         res.EstadoRaw,
			EstadoNormalizado: res.EstadoNormalizado,
			Asegurado:         res.Asegurado,
			ConsultedAt:       res.ConsultedAt,
			Error:             res.Error,
		})
	}
	return rows
}

// RenderExport renders the given results as a downloadable file.
func RenderExport(format ExportFormat, results []bolivar.Result) (Export, error) {
	rows := SanitizeRows(results)
	if len(rows) == 0 {
		return Export{}, ErrNoRows
	}

	writer := table.NewWriter()
	writer.AppendHeader(table.Row{
		"Radicado", "Estado", "Estado Normalizado", "Asegurado", "Consultado", "Error",
	})
	for _, row := range rows {
		consultedAt := ""
		if !row.ConsultedAt.IsZero() {
			consultedAt = row.ConsultedAt.In(timezone.Location).Format("2006-01-02 15:04:05")
		}
		writer.AppendRow(table.Row{
			row.Radicado,
			row.EstadoRaw,
			row.EstadoNormalizado,
			row.Asegurado,
			consultedAt,
			row.Error,
		})
	}

	stamp := timezone.Now().Format("20060102_1504")
	switch format {
	case FormatCsv:
		return Export{
			Filename:    fmt.Sprintf("radicados_%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Body:        []byte(writer.RenderCSV()),
		}, nil
	case FormatHtml:
		return Export{
			Filename:    fmt.Sprintf("radicados_%s.html", stamp),
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(writer.RenderHTML()),
		}, nil
	default:
		return Export{}, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
