package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCSVReporter_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips daily values", func(t *testing.T) {
		dir := t.TempDir()
		reporter := NewCSVReporter(dir)

		points := []domain.PricePoint{
			{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Product: "Azúcar Blanco", Value: ptr(1850.5)},
			{Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Product: "Azúcar Blanco", Value: nil},
			{Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), Product: "Azúcar Blanco", Value: ptr(1900)},
		}

		require.NoError(t, reporter.Write(ctx, "daily.csv", points))

		f, err := os.Open(filepath.Join(dir, "daily.csv"))
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)

		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Referencia", "Data", "Valor"}, rows[0])
		assert.Equal(t, []string{"Azúcar Blanco", "05/01/2024", "1850.5"}, rows[1])
		assert.Equal(t, []string{"Azúcar Blanco", "06/01/2024", ""}, rows[2])
		assert.Equal(t, []string{"Azúcar Blanco", "07/01/2024", "1900.0"}, rows[3])
	})

	t.Run("writes only the header for an empty series", func(t *testing.T) {
		dir := t.TempDir()
		reporter := NewCSVReporter(dir)

		require.NoError(t, reporter.Write(ctx, "empty.csv", nil))

		data, err := os.ReadFile(filepath.Join(dir, "empty.csv"))
		require.NoError(t, err)
		assert.Equal(t, "Referencia,Data,Valor\n", string(data))
	})

	t.Run("fails when the directory does not exist", func(t *testing.T) {
		reporter := NewCSVReporter(filepath.Join(t.TempDir(), "missing"))

		err := reporter.Write(ctx, "out.csv", nil)

		assert.Error(t, err)
	})
}
