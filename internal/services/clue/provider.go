// Package clue supplies spymaster clues to the game engine. Every provider
// sees the full board and returns a clue word and count, or an error
// wrapping model.ErrClueUnavailable.
package clue

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcoot/codenames/internal/model"
)

// Provider supplies clues for the team named in the view
type Provider interface {
	RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, view model.BoardView) (model.Clue, error)

// RequestClue calls f
func (f ProviderFunc) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	return f(ctx, view)
}

// RiskMode tunes how much a spymaster tolerates ambiguity
type RiskMode string

const (
	RiskSafe       RiskMode = "SAFE"
	RiskNormal     RiskMode = "NORMAL"
	RiskAggressive RiskMode = "AGGRESSIVE"
)

// ParseRiskMode parses a risk mode name, case-insensitively.
// An empty name is NORMAL.
func ParseRiskMode(s string) (RiskMode, error) {
	switch mode := RiskMode(strings.ToUpper(strings.TrimSpace(s))); mode {
	case "":
		return RiskNormal, nil
	case RiskSafe, RiskNormal, RiskAggressive:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown risk mode %q", s)
	}
}

// Request is the payload sent to out-of-process spymasters
type Request struct {
	model.StateExport
	Risk RiskMode `json:"risk,omitempty"`
}

// NewRequest builds the wire request for view
func NewRequest(view model.BoardView, risk RiskMode) Request {
	return Request{StateExport: view.Export(), Risk: risk}
}

// Response is the payload returned by out-of-process spymasters
type Response struct {
	Clue   string `json:"clue"`
	Number int    `json:"number"`
	Error  string `json:"error,omitempty"`
}

// ToClue converts the response for team, failing if the spymaster
// reported an error
func (r Response) ToClue(team model.Team) (model.Clue, error) {
	if r.Error != "" {
		return model.Clue{}, fmt.Errorf("%w: spymaster error: %s", model.ErrClueUnavailable, r.Error)
	}
	return model.Clue{Word: r.Clue, Count: r.Number, Team: team}, nil
}

// unavailable wraps err as a ClueUnavailable error, keeping err in the chain
func unavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrClueUnavailable, source, err)
}
