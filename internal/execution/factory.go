package execution

import (
	"fmt"
	"log/slog"
	"os"

	"futures_go/internal/infra"
	"futures_go/internal/infra/binance"
)

// Mode represents the trading execution mode.
type Mode string

const (
	ModePaper   Mode = "PAPER"
	ModeTestnet Mode = "TESTNET"
	ModeReal    Mode = "REAL"
)

// Factory creates Exchange instances based on the configured mode.
type Factory struct {
	config *infra.Config
	log    *slog.Logger
}

// NewFactory creates a new factory.
func NewFactory(cfg *infra.Config, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{config: cfg, log: log}
}

// CreateExchange returns the Exchange implementation for the mode, plus
// a cleanup func that wipes credentials on every exit path.
func (f *Factory) CreateExchange() (Exchange, func(), error) {
	mode := Mode(f.config.Trading.Mode)

	f.log.Info("Initializing execution venue", slog.String("mode", string(mode)))

	switch mode {
	case ModePaper:
		return NewPaperExchange(f.log), func() {}, nil

	case ModeTestnet:
		client, err := f.newClient(binance.TestnetURL)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil

	case ModeReal:
		// Safety latch: real-money trading has to be opted into twice.
		if os.Getenv("CONFIRM_REAL_MONEY") != "true" {
			return nil, nil, fmt.Errorf("real trading requires CONFIRM_REAL_MONEY=true in the environment")
		}
		f.log.Warn("🚨 Connecting to Binance REAL (Mainnet)")
		client, err := f.newClient(binance.MainnetURL)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown execution mode: %s", mode)
	}
}

func (f *Factory) newClient(defaultURL string) (*binance.Client, error) {
	baseURL := f.config.API.Binance.RestURL
	if baseURL == "" {
		baseURL = defaultURL
	}
	return binance.NewClient(
		f.config.API.Binance.APIKey,
		f.config.API.Binance.APISecret,
		baseURL,
		f.log,
	)
}
