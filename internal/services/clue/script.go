package clue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/mcoot/codenames/internal/model"
)

// ScriptProvider runs an external spymaster program per request. The
// program reads a Request as JSON on stdin and writes a Response as JSON
// on stdout; anything it prints after the JSON object is ignored.
type ScriptProvider struct {
	command string
	args    []string
	risk    RiskMode
	logger  *slog.Logger
}

// NewScriptProvider creates a provider that runs command with args
func NewScriptProvider(command string, args []string, risk RiskMode, logger *slog.Logger) *ScriptProvider {
	return &ScriptProvider{
		command: command,
		args:    args,
		risk:    risk,
		logger:  logger.With(slog.String("component", "script-spymaster")),
	}
}

var _ Provider = (*ScriptProvider)(nil)

// RequestClue runs the program, killing it if ctx ends first
func (p *ScriptProvider) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	payload, err := json.Marshal(NewRequest(view, p.risk))
	if err != nil {
		return model.Clue{}, unavailable("script", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return model.Clue{}, unavailable("script", err)
	}

	var resp Response
	if err := json.NewDecoder(&stdout).Decode(&resp); err != nil {
		return model.Clue{}, unavailable("script", fmt.Errorf("decoding output: %w", err))
	}

	p.logger.Debug("script returned clue",
		slog.String("command", p.command),
		slog.String("clue", resp.Clue),
		slog.Int("number", resp.Number),
	)
	return resp.ToClue(view.Team)
}
