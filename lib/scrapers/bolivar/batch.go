package bolivar

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"
)

var identifierSeparators = strings.NewReplacer("\r", "\n", ",", "\n", ";", "\n")

// ParseRadicados splits a pasted block of identifiers on newlines,
// commas and semicolons, then normalizes the pieces.
func ParseRadicados(raw string) []string {
	return NormalizeRadicados(strings.Split(identifierSeparators.Replace(raw), "\n"))
}

// NormalizeRadicados trims each identifier, drops empties and
// de-duplicates preserving first-seen order.
func NormalizeRadicados(values []string) []string {
	seen := map[string]bool{}
	var unique []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	return unique
}

// QueryBatch runs the session over a list of radicados sequentially
// (each query consumes and refreshes the shared view state token, so
// there is never more than one in flight). A failing identifier is
// converted into a failed Result and never aborts the batch; only
// configuration and authentication errors do, since no identifier can
// succeed without a valid session.
func (c *Client) QueryBatch(ctx context.Context, radicados []string) (BatchResult, error) {
	fetchedAt := timezone.Now()
	ids := NormalizeRadicados(radicados)

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		res, err := c.QueryRadicado(ctx, id)
		if err != nil {
			if errors.Is(err, ErrConfiguration) || errors.Is(err, ErrAuthentication) {
				return BatchResult{}, err
			}

			slog.WarnContext(ctx, "radicado query failed", "radicado", id, "err", err)
			res = Result{
				Radicado:          id,
				OK:                false,
				EstadoNormalizado: StatusNotFound,
				ConsultedAt:       timezone.Now(),
				Error:             err.Error(),
			}
		}
		results = append(results, res)
	}

	return BatchResult{
		FetchedAt: fetchedAt,
		Count:     len(results),
		Results:   results,
	}, nil
}
