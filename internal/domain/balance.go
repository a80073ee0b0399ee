package domain

import "github.com/shopspring/decimal"

// Balance represents a single asset balance in the futures account.
type Balance struct {
	Asset            string
	WalletBalance    decimal.Decimal
	AvailableBalance decimal.Decimal
	UnrealizedProfit decimal.Decimal
}

// HasFunds checks if any margin is available for new orders.
func (b *Balance) HasFunds() bool {
	return b.AvailableBalance.Sign() > 0
}
