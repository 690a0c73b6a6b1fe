package powerbi

import (
	"context"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// QueryResponse models the part of the QES result document this tool reads:
// the point list of the first data-shape group of the first result.
type QueryResponse struct {
	Results []QueryResult `json:"results"`
}

type QueryResult struct {
	Result ResultPayload `json:"result"`
}

type ResultPayload struct {
	Data ResultData `json:"data"`
}

type ResultData struct {
	DSR DSR `json:"dsr"`
}

type DSR struct {
	DS []DataShape `json:"DS"`
}

type DataShape struct {
	PH []PrimaryHierarchy `json:"PH"`
}

type PrimaryHierarchy struct {
	DM0 []DataPoint `json:"DM0"`
}

// DataPoint is one point of the series: G0 is a millisecond Unix timestamp,
// X holds the secondary measures (M0 carries the price, and may be null or
// absent when there was no observation that day).
type DataPoint struct {
	G0 *int64             `json:"G0"`
	X  []SecondaryMeasure `json:"X"`
}

type SecondaryMeasure struct {
	M0 *float64 `json:"M0"`
}

// ParseDailySeries flattens a query response into price points, in source
// order. Any deviation from the expected nesting is a FormatError; a point
// without a measure is not an error and yields a record with a nil value,
// so the date axis stays complete for fill-forward downstream.
//
// Every record is stamped with the caller-supplied product label; the
// response's own product grouping is never read. Suspicious if the query ever
// returns mixed products, since the label would then be wrong for some rows.
func ParseDailySeries(ctx context.Context, resp *QueryResponse, product string) ([]domain.PricePoint, error) {
	logger := zerolog.Ctx(ctx)

	if len(resp.Results) == 0 {
		return nil, &domain.FormatError{Op: "parse query response", Msg: "no results"}
	}
	shapes := resp.Results[0].Result.Data.DSR.DS
	if len(shapes) == 0 {
		return nil, &domain.FormatError{Op: "parse query response", Msg: "no data shapes in result"}
	}
	partitions := shapes[0].PH
	if len(partitions) == 0 {
		return nil, &domain.FormatError{Op: "parse query response", Msg: "no partitions in data shape"}
	}
	points := partitions[0].DM0
	if len(points) == 0 {
		return nil, &domain.FormatError{Op: "parse query response", Msg: "empty point list"}
	}

	records := make([]domain.PricePoint, 0, len(points))
	for _, p := range points {
		if p.G0 == nil {
			return nil, &domain.FormatError{
				Op:  "parse query response",
				Msg: "point without a timestamp",
			}
		}

		var value *float64
		if len(p.X) > 0 && p.X[0].M0 != nil {
			v := *p.X[0].M0
			value = &v
		}

		records = append(records, domain.PricePoint{
			Date:    time.UnixMilli(*p.G0).UTC().Truncate(24 * time.Hour),
			Product: product,
			Value:   value,
		})
	}

	logger.Info().Int("rows", len(records)).Msg("parsed daily series")
	return records, nil
}
