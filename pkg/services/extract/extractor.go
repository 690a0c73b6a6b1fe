package extract

import (
	"context"
	"fmt"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/de-tools/price-atlas/pkg/services/auth"
	"github.com/de-tools/price-atlas/pkg/services/config"
	"github.com/de-tools/price-atlas/pkg/services/powerbi"
)

// Extractor runs the full extraction sequence: embed token, model metadata,
// session token, semantic query, parse. Every step is fatal on failure and
// nothing is retried.
type Extractor struct {
	cfg *config.Config
}

func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

func (e *Extractor) Run(ctx context.Context, req domain.SeriesRequest) ([]domain.PricePoint, error) {
	tokens := auth.NewTokenProvider(e.cfg.TokenURL(), e.cfg.TokenTimeout)
	embedToken, err := tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain embed token: %w", err)
	}

	client := powerbi.NewClient(powerbi.ClientOptions{
		Cluster:         e.cfg.Cluster,
		ReportID:        e.cfg.ReportID,
		EmbedToken:      embedToken,
		MetadataTimeout: e.cfg.MetadataTimeout,
		QueryTimeout:    e.cfg.QueryTimeout,
	})

	metadata, err := client.FetchModelsAndExploration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model metadata: %w", err)
	}

	mwcToken, found := client.SessionToken(ctx, metadata)
	if !found {
		return nil, domain.ErrSessionTokenNotFound
	}

	// The query's upper bound is exclusive; widen the inclusive request end
	// by one day so the last requested day is still covered.
	payload := powerbi.DailySeriesQuery(
		e.cfg.ModelID,
		e.cfg.DatasetID, e.cfg.ReportID, e.cfg.VisualID,
		req.Start, req.End.AddDate(0, 0, 1),
		req.Product, req.Department,
	)

	resp, err := client.ExecuteQuery(ctx, e.cfg.QESEndpoint, mwcToken, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	points, err := powerbi.ParseDailySeries(ctx, resp, req.Product)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}
	return points, nil
}
