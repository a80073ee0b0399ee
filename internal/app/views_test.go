package app

import (
	"testing"

	"futures_go/internal/infra/binance"
)

func TestMapBalances_SkipsEmptyAssets(t *testing.T) {
	info := binance.AccountInfo{
		Assets: []binance.AccountAsset{
			{Asset: "USDT", WalletBalance: "1000.50", AvailableBalance: "900", UnrealizedProfit: "0"},
			{Asset: "BNB", WalletBalance: "0", AvailableBalance: "0", UnrealizedProfit: "0"},
			{Asset: "BTC", WalletBalance: "0", AvailableBalance: "0", UnrealizedProfit: "-0.5"},
		},
	}

	balances := MapBalances(info)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	if balances[0].Asset != "USDT" || balances[0].WalletBalance.String() != "1000.5" {
		t.Errorf("unexpected first balance: %+v", balances[0])
	}
	if balances[1].Asset != "BTC" {
		t.Errorf("asset with unrealized pnl must be kept: %+v", balances[1])
	}
}

func TestMapPositions_SkipsFlat(t *testing.T) {
	risks := []binance.PositionRisk{
		{Symbol: "BTCUSDT", PositionAmt: "0.5", EntryPrice: "40000", MarkPrice: "43000", UnRealizedProfit: "1500", Leverage: "10"},
		{Symbol: "ETHUSDT", PositionAmt: "0", EntryPrice: "0", MarkPrice: "2000", UnRealizedProfit: "0", Leverage: "20"},
		{Symbol: "SOLUSDT", PositionAmt: "-3", EntryPrice: "150", MarkPrice: "140", UnRealizedProfit: "30", Leverage: "5"},
	}

	positions := MapPositions(risks)
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}

	long := positions[0]
	if !long.IsLong() || long.Leverage != 10 {
		t.Errorf("unexpected long position: %+v", long)
	}

	short := positions[1]
	if !short.IsShort() || short.Symbol != "SOLUSDT" {
		t.Errorf("unexpected short position: %+v", short)
	}
}

func TestMapBalances_ToleratesMalformedNumbers(t *testing.T) {
	info := binance.AccountInfo{
		Assets: []binance.AccountAsset{
			{Asset: "USDT", WalletBalance: "abc", AvailableBalance: "", UnrealizedProfit: "10"},
		},
	}

	balances := MapBalances(info)
	if len(balances) != 1 {
		t.Fatalf("got %d balances, want 1", len(balances))
	}
	if balances[0].WalletBalance.Sign() != 0 {
		t.Errorf("malformed balance should parse as zero: %+v", balances[0])
	}
}
