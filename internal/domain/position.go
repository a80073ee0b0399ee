package domain

import "github.com/shopspring/decimal"

// Position represents an open futures position snapshot.
type Position struct {
	Symbol           string
	PositionAmt      decimal.Decimal // Positive for Long, Negative for Short.
	EntryPrice       decimal.Decimal
	MarkPrice        decimal.Decimal
	UnrealizedProfit decimal.Decimal
	Leverage         int
}

// IsLong checks if the position is Long.
func (p *Position) IsLong() bool {
	return p.PositionAmt.Sign() > 0
}

// IsShort checks if the position is Short.
func (p *Position) IsShort() bool {
	return p.PositionAmt.Sign() < 0
}

// IsFlat checks if there is no exposure.
func (p *Position) IsFlat() bool {
	return p.PositionAmt.Sign() == 0
}
