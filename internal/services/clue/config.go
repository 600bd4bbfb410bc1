package clue

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/codenames/internal/dependencies/random"
)

// Provider names accepted in Config.Provider
const (
	ProviderAssociation = "association"
	ProviderScript      = "script"
	ProviderLua         = "lua"
	ProviderNATS        = "nats"
	ProviderHTTP        = "http"
)

// Config selects and configures the spymaster
type Config struct {
	Provider string
	Risk     string

	AssociationsPath string // Empty uses the built-in table

	ScriptCommand string
	ScriptArgs    []string

	LuaScript string

	NATSURL     string
	NATSSubject string

	HTTPURL     string
	HTTPTimeout time.Duration

	RetryAttempts uint
	RetryDelay    time.Duration
}

// DefaultConfig returns the built-in spymaster with two retries
func DefaultConfig() Config {
	return Config{
		Provider:      ProviderAssociation,
		Risk:          string(RiskNormal),
		NATSURL:       "nats://127.0.0.1:4222",
		NATSSubject:   "codenames.clue",
		HTTPTimeout:   10 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    200 * time.Millisecond,
	}
}

// Build creates the configured provider, wrapped for retries when more
// than one attempt is configured. The returned close function releases
// any connection the provider holds and is never nil.
func Build(cfg Config, rnd random.Random, logger *slog.Logger) (Provider, func(), error) {
	risk, err := ParseRiskMode(cfg.Risk)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {}
	var provider Provider

	switch cfg.Provider {
	case ProviderAssociation, "":
		table := DefaultAssociations()
		if cfg.AssociationsPath != "" {
			if table, err = LoadAssociations(cfg.AssociationsPath); err != nil {
				return nil, nil, err
			}
		}
		provider = NewAssociationProvider(table, risk, rnd, logger)

	case ProviderScript:
		if cfg.ScriptCommand == "" {
			return nil, nil, fmt.Errorf("clue provider %q needs a command", cfg.Provider)
		}
		provider = NewScriptProvider(cfg.ScriptCommand, cfg.ScriptArgs, risk, logger)

	case ProviderLua:
		if cfg.LuaScript == "" {
			return nil, nil, fmt.Errorf("clue provider %q needs a script", cfg.Provider)
		}
		if provider, err = NewLuaProvider(cfg.LuaScript, risk, logger); err != nil {
			return nil, nil, err
		}

	case ProviderNATS:
		nc, err := ConnectNATS(cfg.NATSURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to nats: %w", err)
		}
		closer = nc.Close
		provider = NewNATSProvider(nc, cfg.NATSSubject, risk, logger)

	case ProviderHTTP:
		if cfg.HTTPURL == "" {
			return nil, nil, fmt.Errorf("clue provider %q needs a url", cfg.Provider)
		}
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		provider = NewHTTPProvider(client, cfg.HTTPURL, risk, logger)

	default:
		return nil, nil, fmt.Errorf("unknown clue provider %q", cfg.Provider)
	}

	if cfg.RetryAttempts > 1 {
		provider = NewRetrying(provider, cfg.RetryAttempts, cfg.RetryDelay, logger)
	}
	return provider, closer, nil
}
