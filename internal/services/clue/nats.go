package clue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/mcoot/codenames/internal/model"
)

// Requester is the request/reply subset of *nats.Conn
type Requester interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// NATSProvider asks a remote spymaster for clues over NATS request/reply
type NATSProvider struct {
	conn    Requester
	subject string
	risk    RiskMode
	logger  *slog.Logger
}

// NewNATSProvider creates a provider publishing requests on subject
func NewNATSProvider(conn Requester, subject string, risk RiskMode, logger *slog.Logger) *NATSProvider {
	return &NATSProvider{
		conn:    conn,
		subject: subject,
		risk:    risk,
		logger:  logger.With(slog.String("component", "nats-spymaster")),
	}
}

var _ Provider = (*NATSProvider)(nil)

// ConnectNATS dials the server at url, logging disconnects
func ConnectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("codenames"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	)
}

// RequestClue sends the board and waits for the reply until ctx ends
func (p *NATSProvider) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	data, err := json.Marshal(NewRequest(view, p.risk))
	if err != nil {
		return model.Clue{}, unavailable("nats", err)
	}

	msg, err := p.conn.RequestWithContext(ctx, p.subject, data)
	if err != nil {
		return model.Clue{}, unavailable("nats", err)
	}

	var resp Response
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return model.Clue{}, unavailable("nats", err)
	}

	p.logger.Debug("received clue", slog.String("subject", p.subject), slog.String("clue", resp.Clue))
	return resp.ToClue(view.Team)
}
