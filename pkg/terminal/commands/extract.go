package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/de-tools/price-atlas/pkg/services/config"
	"github.com/de-tools/price-atlas/pkg/services/extract"
	"github.com/de-tools/price-atlas/pkg/services/series"
	"github.com/de-tools/price-atlas/pkg/terminal/export"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ExtractCmd struct {
	cfgPath            string
	department         string
	product            string
	startDate          string
	endDate            string
	processingDatetime string
	applyFillNA        bool
	writeDaily         bool
	writeMonthly       bool
	writeMean          bool
	reporter           *export.CSVReporter
}

func NewExtractCmd(reporter *export.CSVReporter) *cobra.Command {
	ec := &ExtractCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a daily price series and export it as CSV",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.cfgPath, "config", "", "Path to an optional configuration file")
	cmd.Flags().StringVar(&ec.department, "department", "",
		"Department name, according to Bolsa Mercantil de Colombia (e.g. 'Nacional')")
	cmd.Flags().StringVar(&ec.product, "product", "",
		"Product name, according to Bolsa Mercantil de Colombia (e.g. 'Azúcar Blanco')")
	cmd.Flags().StringVar(&ec.startDate, "start-date", "", "Start date, in YYYYmmdd format")
	cmd.Flags().StringVar(&ec.endDate, "end-date", "", "End date, in YYYYmmdd format")
	cmd.Flags().StringVar(&ec.processingDatetime, "processing-datetime", "",
		"Processing datetime, in YYYYmmdd_HHMMSS format (defaults to current UTC time)")
	cmd.Flags().BoolVar(&ec.applyFillNA, "apply-fillna", false,
		"Fill missing values using the previous valid values")
	cmd.Flags().BoolVar(&ec.writeDaily, "write-daily-values-csv", false,
		"Write a CSV file of daily values")
	cmd.Flags().BoolVar(&ec.writeMonthly, "write-monthly-values-csv", false,
		"Write a CSV file of values aggregated (mean) for each month")
	cmd.Flags().BoolVar(&ec.writeMean, "write-mean-csv", false,
		"Write a CSV file with the total mean of the given period")

	_ = cmd.MarkFlagRequired("department")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

// ParseYYYYMMDD parses a YYYYmmdd date into a UTC midnight time.
func ParseYYYYMMDD(value string) (time.Time, error) {
	d, err := time.ParseInLocation("20060102", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected format YYYYmmdd", value)
	}
	return d, nil
}

func (ec *ExtractCmd) run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	logger.Info().Msg("starting price series extractor")

	startDate, err := ParseYYYYMMDD(ec.startDate)
	if err != nil {
		return err
	}
	endDate, err := ParseYYYYMMDD(ec.endDate)
	if err != nil {
		return err
	}
	if startDate.After(endDate) {
		return fmt.Errorf("start-date must be earlier than or equal to end-date")
	}

	processingDatetime := ec.processingDatetime
	if processingDatetime == "" {
		processingDatetime = time.Now().UTC().Format("20060102_150405")
		logger.Info().Str("processing_datetime", processingDatetime).
			Msg("no processing datetime provided, using current datetime")
	} else {
		logger.Info().Str("processing_datetime", processingDatetime).
			Msg("processing datetime provided")
	}

	logger.Info().
		Str("department", ec.department).
		Str("product", ec.product).
		Str("start_date", startDate.Format("2006-01-02")).
		Str("end_date", endDate.Format("2006-01-02")).
		Bool("apply_fillna", ec.applyFillNA).
		Msg("running extractor")

	cfg, err := config.Load(ec.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	extractor := extract.NewExtractor(cfg)
	points, err := extractor.Run(ctx, domain.SeriesRequest{
		Department: ec.department,
		Product:    ec.product,
		Start:      startDate,
		End:        endDate,
	})
	if err != nil {
		return err
	}

	if ec.applyFillNA {
		logger.Info().Msg("applying forward fill")
		points = series.ForwardFill(points)
	}

	cov := series.Summarize(points)
	logger.Info().
		Int("distinct_days", cov.Days).
		Str("first_date", cov.First.Format("2006-01-02")).
		Str("last_date", cov.Last.Format("2006-01-02")).
		Msg("series coverage")

	// The filename carries the end date as the user gave it, not the widened
	// query bound.
	baseFilename := export.BaseFilename(ec.department, ec.product, startDate, endDate, ec.applyFillNA)

	if ec.writeDaily {
		if err := ec.reporter.Write(ctx, baseFilename+".csv", points); err != nil {
			return err
		}
	}
	if ec.writeMonthly {
		if err := ec.reporter.Write(ctx, baseFilename+"_monthly.csv", series.MonthlyMean(points)); err != nil {
			return err
		}
	}
	if ec.writeMean {
		if err := ec.reporter.Write(ctx, baseFilename+"_mean.csv", series.OverallMean(points)); err != nil {
			return err
		}
	}

	logger.Info().Msg("extraction finished")
	return nil
}
