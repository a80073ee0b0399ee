package infra

import (
	"fmt"
	"strings"
)

// ANSI Color Codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// PrintBanner displays the startup banner with mode-specific warnings.
func PrintBanner(cfg *Config) {
	mode := strings.ToUpper(cfg.Trading.Mode)
	version := cfg.App.Version

	color := ColorGreen
	modeDesc := "UNKNOWN"

	switch mode {
	case "REAL":
		color = ColorRed
		modeDesc = "REAL MONEY TRADING"
	case "TESTNET":
		color = ColorYellow
		modeDesc = "BINANCE FUTURES TESTNET"
	case "PAPER":
		color = ColorCyan
		modeDesc = "LOCAL SIMULATION"
	}

	fmt.Println()
	fmt.Printf("%s#########################################################%s\n", color, ColorReset)
	fmt.Printf("%s#            🚀 Futures Go Trading Client               #%s\n", color, ColorReset)
	fmt.Printf("%s#   MODE:    %-42s #%s\n", color, mode, ColorReset)
	fmt.Printf("%s#   TYPE:    %-42s #%s\n", color, modeDesc, ColorReset)
	fmt.Printf("%s#   VERSION: %-42s #%s\n", color, version, ColorReset)

	if mode == "REAL" {
		fmt.Printf("%s#   ⚠️  WARNING: YOU ARE TRADING WITH REAL MONEY        #%s\n", ColorRed, ColorReset)
	}

	fmt.Printf("%s#########################################################%s\n", color, ColorReset)
	fmt.Println()
}
