package clue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/codenames/internal/model"
)

// HTTPProvider posts the board to a spymaster web service
type HTTPProvider struct {
	client *http.Client
	url    string
	risk   RiskMode
	logger *slog.Logger
}

// NewHTTPProvider creates a provider posting to url. A nil client uses
// http.DefaultClient.
func NewHTTPProvider(client *http.Client, url string, risk RiskMode, logger *slog.Logger) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{
		client: client,
		url:    url,
		risk:   risk,
		logger: logger.With(slog.String("component", "http-spymaster")),
	}
}

var _ Provider = (*HTTPProvider)(nil)

// RequestClue posts a JSON Request and decodes a JSON Response
func (p *HTTPProvider) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	body, err := json.Marshal(NewRequest(view, p.risk))
	if err != nil {
		return model.Clue{}, unavailable("http", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return model.Clue{}, unavailable("http", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return model.Clue{}, unavailable("http", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.Clue{}, unavailable("http", fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(msg)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.Clue{}, unavailable("http", err)
	}

	p.logger.Debug("received clue", slog.String("url", p.url), slog.String("clue", out.Clue))
	return out.ToClue(view.Team)
}
