package bolivar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"Nuevo", StatusNotWithdrawn},
		{"nuevo", StatusNotWithdrawn},
		{"Desistido por el cliente", StatusWithdrawn},
		{"DESISTIDA", StatusWithdrawn},
		{"Reportado a la aseguradora", StatusReported},
		{"", StatusNotFound},
		{"   ", StatusNotFound},
		{"no ha pagado", StatusNotWithdrawn},
		{"sin pagar", StatusNotWithdrawn},
		{"Algo Raro", "ALGO RARO"},
		{"Algo \n  Raro", "ALGO RARO"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeStatus(test.raw), "raw: %q", test.raw)
	}
}

// same input always yields the same token
func TestNormalizeStatusIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		require.Equal(t, StatusNotWithdrawn, NormalizeStatus("Nuevo"))
	}
}
