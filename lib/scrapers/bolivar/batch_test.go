package bolivar

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseRadicados(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "mixed separators",
			raw:      "A-100, B-200;C-300\nD-400",
			expected: []string{"A-100", "B-200", "C-300", "D-400"},
		},
		{
			name:     "windows line endings and padding",
			raw:      "  A-100 \r\n B-200 \r\n",
			expected: []string{"A-100", "B-200"},
		},
		{
			name:     "duplicates keep first-seen order",
			raw:      "B-200,A-100,B-200,A-100",
			expected: []string{"B-200", "A-100"},
		},
		{
			name:     "blank input",
			raw:      " \n , ; \n ",
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got := ParseRadicados(test.raw)
			require.Empty(t, cmp.Diff(test.expected, got))
		})
	}
}

func TestQueryBatch(t *testing.T) {
	portal := newFakePortal(t)
	portal.known["C-300"] = true
	client := portal.cookieClient(t)

	batch, err := client.QueryBatch(context.Background(), []string{"A-100", "Z-999", "C-300"})
	require.NoError(t, err)
	require.Equal(t, 3, batch.Count)
	require.Len(t, batch.Results, 3)
	require.False(t, batch.FetchedAt.IsZero())

	require.Equal(t, StatusNotWithdrawn, batch.Results[0].EstadoNormalizado)
	require.Equal(t, StatusNotFound, batch.Results[1].EstadoNormalizado)
	require.Equal(t, StatusNotWithdrawn, batch.Results[2].EstadoNormalizado)
	for _, res := range batch.Results {
		require.True(t, res.OK)
	}
}

// one identifier timing out must not take the rest of the batch down
func TestQueryBatchSurvivesTimeout(t *testing.T) {
	portal := newFakePortal(t)
	portal.known["C-300"] = true
	portal.slow["B-200"] = true
	client := portal.cookieClient(t)

	batch, err := client.QueryBatch(context.Background(), []string{"A-100", "B-200", "C-300"})
	require.NoError(t, err)
	require.Len(t, batch.Results, 3)

	require.True(t, batch.Results[0].OK)
	require.Equal(t, "A-100", batch.Results[0].Radicado)

	require.False(t, batch.Results[1].OK)
	require.Equal(t, "B-200", batch.Results[1].Radicado)
	require.Equal(t, StatusNotFound, batch.Results[1].EstadoNormalizado)
	require.NotEmpty(t, batch.Results[1].Error)

	require.True(t, batch.Results[2].OK)
	require.Equal(t, "C-300", batch.Results[2].Radicado)
}

// without a usable session nothing in the batch can succeed, so the
// batch fails as a whole instead of producing N identical failures
func TestQueryBatchAbortsOnConfigurationError(t *testing.T) {
	client, err := NewClient(ClientOptions{UseServerAuth: true})
	require.NoError(t, err)

	_, err = client.QueryBatch(context.Background(), []string{"A-100", "B-200"})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestQueryBatchDeduplicatesInput(t *testing.T) {
	portal := newFakePortal(t)
	client := portal.cookieClient(t)

	batch, err := client.QueryBatch(context.Background(), []string{"A-100", "A-100", " A-100 "})
	require.NoError(t, err)
	require.Equal(t, 1, batch.Count)
}
