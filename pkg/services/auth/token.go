package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type embedTokenResponse struct {
	Token string `json:"Token"`
}

// TokenProvider fetches the short-lived embed credential from the internal
// token service. Each run performs exactly one fetch; nothing is cached.
type TokenProvider struct {
	tokenURL string
	client   *http.Client
}

func NewTokenProvider(tokenURL string, timeout time.Duration) *TokenProvider {
	return &TokenProvider{
		tokenURL: tokenURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *TokenProvider) GetToken(ctx context.Context) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Msg("requesting embed token")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.tokenURL, nil)
	if err != nil {
		return "", &domain.TransportError{Op: "embed token request", Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("embed token request failed")
		return "", &domain.TransportError{Op: "embed token request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().Int("status", resp.StatusCode).Msg("token service returned an error")
		return "", &domain.TransportError{Op: "embed token request", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{Op: "embed token request", Err: err}
	}

	var tokenResp embedTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		logger.Error().Err(err).Msg("token service response is not valid JSON")
		return "", &domain.FormatError{Op: "embed token response", Err: err}
	}

	if tokenResp.Token == "" {
		logger.Error().Msg("field 'Token' not found in token service response")
		return "", &domain.FormatError{Op: "embed token response", Msg: "missing 'Token' field"}
	}

	logger.Info().Msg("embed token retrieved")
	return tokenResp.Token, nil
}
