package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"futures_go/internal/execution"
	"futures_go/internal/infra"
	"futures_go/internal/infra/binance"
)

// Bootstrap orchestrates the application startup sequence: environment,
// configuration, secrets, and logging.
type Bootstrap struct {
	Config *infra.Config
	Logger *slog.Logger

	closeLog func()
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{closeLog: func() {}}
}

// Initialize loads .env, the config file, the per-mode secrets file, and
// installs the logger. Credentials resolve in priority order:
// environment, secrets yaml, config file.
func (b *Bootstrap) Initialize() error {
	// .env is optional; real deployments use actual environment variables.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return err
	}

	secretPath := filepath.Join("secrets", strings.ToLower(cfg.Trading.Mode)+".yaml")
	if _, err := os.Stat(secretPath); err == nil {
		sec, err := infra.LoadSecretConfig(secretPath)
		if err != nil {
			return err
		}
		cfg.ApplySecrets(sec)
	}

	logger, closeLog, err := infra.NewLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	b.Config = cfg
	b.Logger = logger
	b.closeLog = closeLog

	logger.Debug("Bootstrap complete", slog.String("mode", cfg.Trading.Mode))
	return nil
}

// NewExchange builds the execution venue for the configured mode.
// dryRun forces the paper venue regardless of mode.
func (b *Bootstrap) NewExchange(dryRun bool) (execution.Exchange, func(), error) {
	if dryRun {
		b.Logger.Info("Dry run: using paper execution, nothing will be sent")
		return execution.NewPaperExchange(b.Logger), func() {}, nil
	}
	return execution.NewFactory(b.Config, b.Logger).CreateExchange()
}

// NewRESTClient builds the concrete REST client for account, position,
// and order queries. These always need a live endpoint.
func (b *Bootstrap) NewRESTClient() (*binance.Client, error) {
	if b.Config.Trading.Mode == string(execution.ModePaper) {
		return nil, fmt.Errorf("account and order queries require TESTNET or REAL mode, not PAPER")
	}

	baseURL := b.Config.API.Binance.RestURL
	if baseURL == "" {
		baseURL = binance.TestnetURL
		if b.Config.Trading.Mode == string(execution.ModeReal) {
			baseURL = binance.MainnetURL
		}
	}

	return binance.NewClient(
		b.Config.API.Binance.APIKey,
		b.Config.API.Binance.APISecret,
		baseURL,
		b.Logger,
	)
}

// Close releases bootstrap-owned resources on every exit path.
func (b *Bootstrap) Close() {
	b.closeLog()
}
