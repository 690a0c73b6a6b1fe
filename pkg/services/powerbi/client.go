package powerbi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	powerBIOrigin  = "https://app.powerbi.com"
	powerBIReferer = "https://app.powerbi.com/"
)

// Client talks to the Power BI embed surface: it fetches report metadata with
// the embed credential and executes semantic queries with the session token
// extracted from that metadata. Calls carry fresh correlation identifiers.
type Client struct {
	cluster         string
	reportID        string
	embedToken      string
	httpClient      *http.Client
	metadataTimeout time.Duration
	queryTimeout    time.Duration
}

type ClientOptions struct {
	Cluster         string
	ReportID        string
	EmbedToken      string
	MetadataTimeout time.Duration
	QueryTimeout    time.Duration
}

func NewClient(opts ClientOptions) *Client {
	return &Client{
		cluster:         opts.Cluster,
		reportID:        opts.ReportID,
		embedToken:      opts.EmbedToken,
		httpClient:      &http.Client{},
		metadataTimeout: opts.MetadataTimeout,
		queryTimeout:    opts.QueryTimeout,
	}
}

// FetchModelsAndExploration retrieves the per-report model/session metadata
// document. The document's schema is not stable, so it is returned decoded
// but untyped for the session-token search.
func (c *Client) FetchModelsAndExploration(ctx context.Context) (any, error) {
	logger := zerolog.Ctx(ctx)

	endpoint := fmt.Sprintf("%s/explore/reports/%s/modelsAndExploration", c.cluster, c.reportID)
	params := url.Values{}
	params.Set("preferReadOnlySession", "true")
	params.Set("skipQueryData", "true")

	ctx, cancel := context.WithTimeout(ctx, c.metadataTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch model metadata", Err: err}
	}

	req.Header.Set("Authorization", "EmbedToken "+c.embedToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	c.setCorrelationHeaders(req)

	logger.Info().Msg("fetching modelsAndExploration")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch model metadata", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.TransportError{Op: "fetch model metadata", Status: resp.StatusCode}
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &domain.FormatError{Op: "model metadata response", Err: err}
	}
	return doc, nil
}

// SessionToken searches the metadata document for the mwcToken field at any
// depth. The boolean is false when the token occurs nowhere; the caller must
// abort the run in that case.
func (c *Client) SessionToken(ctx context.Context, metadata any) (string, bool) {
	logger := zerolog.Ctx(ctx)

	value, found := FindKey(metadata, "mwcToken")
	token, _ := value.(string)
	found = found && token != ""

	logger.Info().Bool("found", found).Msg("mwc token search finished")
	if found {
		logger.Info().Int("token_length", len(token)).Msg("mwc token extracted")
	}
	return token, found
}

// ExecuteQuery submits the semantic query to the query-execution endpoint
// using the session token. A non-200 status is logged with the response body
// for diagnosis before the call fails.
func (c *Client) ExecuteQuery(ctx context.Context, endpoint, mwcToken string, payload QueryPayload) (*QueryResponse, error) {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.FormatError{Op: "encode query payload", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TransportError{Op: "execute query", Err: err}
	}

	req.Header.Set("Authorization", "MWCToken "+mwcToken)
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("x-ms-root-activity-id", uuid.NewString())
	req.Header.Set("x-ms-parent-activity-id", uuid.NewString())
	c.setCorrelationHeaders(req)

	logger.Info().Msg("executing semantic query")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: "execute query", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: "execute query", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("query execution failed")
		return nil, &domain.TransportError{Op: "execute query", Status: resp.StatusCode}
	}

	var queryResp QueryResponse
	if err := json.Unmarshal(respBody, &queryResp); err != nil {
		return nil, &domain.FormatError{Op: "query response", Err: err}
	}
	return &queryResp, nil
}

func (c *Client) setCorrelationHeaders(req *http.Request) {
	req.Header.Set("activityid", uuid.NewString())
	req.Header.Set("requestid", uuid.NewString())
	req.Header.Set("origin", powerBIOrigin)
	req.Header.Set("referer", powerBIReferer)
}
