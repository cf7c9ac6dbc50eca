package bolivar

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseCookieHeader(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []*http.Cookie
	}{
		{
			name: "standard semicolon form",
			raw:  "a=b; JSESSIONID=abc123; X=Y",
			expected: []*http.Cookie{
				{Name: "a", Value: "b"},
				{Name: "JSESSIONID", Value: "abc123"},
				{Name: "X", Value: "Y"},
			},
		},
		{
			name: "one cookie per line with label",
			raw:  "Cookie: a=b\r\nJSESSIONID=abc123\nX=Y",
			expected: []*http.Cookie{
				{Name: "a", Value: "b"},
				{Name: "JSESSIONID", Value: "abc123"},
				{Name: "X", Value: "Y"},
			},
		},
		{
			name: "duplicate names keep the last value",
			raw:  "a=b; a=c",
			expected: []*http.Cookie{
				{Name: "a", Value: "c"},
			},
		},
		{
			name:     "blank input",
			raw:      "   \n  ",
			expected: nil,
		},
		{
			name: "garbage fragments are dropped",
			raw:  "a=b; novalue; =empty",
			expected: []*http.Cookie{
				{Name: "a", Value: "b"},
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got := ParseCookieHeader(test.raw)
			diff := cmp.Diff(test.expected, got)
			require.Empty(t, diff)
		})
	}
}
