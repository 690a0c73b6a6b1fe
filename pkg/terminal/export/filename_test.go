package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Nación", "nacion"},
		{"Azúcar Blanco", "azucar_blanco"},
		{"Nacional", "nacional"},
		{"Café (Exportación)", "cafe_exportacion"},
		{"  spaced  out  ", "__spaced__out__"},
		{"UPPER_case-123", "upper_case123"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestBaseFilename(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("assembles normalized parts and padded dates", func(t *testing.T) {
		name := BaseFilename("Nación", "Azúcar Blanco", start, end, false)

		assert.Equal(t, "values_nacion_azucar_blanco_2024_01_01_2024_03_05_without_fillna", name)
	})

	t.Run("marks fill mode", func(t *testing.T) {
		name := BaseFilename("Nacional", "Trigo", start, end, true)

		assert.Equal(t, "values_nacional_trigo_2024_01_01_2024_03_05_with_fillna", name)
	})

	t.Run("is stable across invocations", func(t *testing.T) {
		first := BaseFilename("Nación", "Azúcar Blanco", start, end, true)
		second := BaseFilename("Nación", "Azúcar Blanco", start, end, true)

		assert.Equal(t, first, second)
	})
}
