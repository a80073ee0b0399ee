package app

import (
	"strconv"

	"github.com/shopspring/decimal"

	"futures_go/internal/domain"
	"futures_go/internal/infra/binance"
)

// MapBalances converts the account snapshot into domain balances,
// skipping assets with no funds at all.
func MapBalances(info binance.AccountInfo) []domain.Balance {
	out := make([]domain.Balance, 0, len(info.Assets))
	for _, asset := range info.Assets {
		b := domain.Balance{
			Asset:            asset.Asset,
			WalletBalance:    parseDecimal(asset.WalletBalance),
			AvailableBalance: parseDecimal(asset.AvailableBalance),
			UnrealizedProfit: parseDecimal(asset.UnrealizedProfit),
		}
		if b.WalletBalance.Sign() == 0 && b.UnrealizedProfit.Sign() == 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

// MapPositions converts position risk entries into domain positions,
// skipping flat ones.
func MapPositions(risks []binance.PositionRisk) []domain.Position {
	out := make([]domain.Position, 0, len(risks))
	for _, r := range risks {
		p := domain.Position{
			Symbol:           r.Symbol,
			PositionAmt:      parseDecimal(r.PositionAmt),
			EntryPrice:       parseDecimal(r.EntryPrice),
			MarkPrice:        parseDecimal(r.MarkPrice),
			UnrealizedProfit: parseDecimal(r.UnRealizedProfit),
		}
		if lev, err := strconv.Atoi(r.Leverage); err == nil {
			p.Leverage = lev
		}
		if p.IsFlat() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseDecimal tolerates the empty strings the exchange sometimes sends
// for unset numeric fields.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
