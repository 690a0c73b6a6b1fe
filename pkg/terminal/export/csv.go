package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// CSVReporter writes price points as Referencia/Data/Valor CSV files into a
// fixed directory.
type CSVReporter struct {
	dir string
}

func NewCSVReporter(dir string) *CSVReporter {
	if dir == "" {
		dir = "."
	}
	return &CSVReporter{dir: dir}
}

// Write serializes points to filename inside the reporter's directory. Dates
// are formatted DD/MM/YYYY; a missing value becomes an empty field.
func (r *CSVReporter) Write(ctx context.Context, filename string, points []domain.PricePoint) error {
	logger := zerolog.Ctx(ctx)
	path := filepath.Join(r.dir, filename)
	logger.Info().Str("path", path).Msg("writing CSV")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Referencia", "Data", "Valor"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range points {
		value := ""
		if p.Value != nil {
			value = strconv.FormatFloat(*p.Value, 'f', -1, 64)
			// Integral values keep a trailing .0; the export format predates
			// this tool and downstream consumers parse values as floats.
			if !strings.ContainsAny(value, ".eE") {
				value += ".0"
			}
		}
		if err := w.Write([]string{p.Product, p.Date.Format("02/01/2006"), value}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	logger.Info().Int("rows", len(points)).Str("path", path).Msg("CSV written")
	return nil
}
