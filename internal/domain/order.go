package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType enumerates the supported USDT-M futures order types.
type OrderType string

const (
	OrderTypeMarket           OrderType = "MARKET"
	OrderTypeLimit            OrderType = "LIMIT"
	OrderTypeStop             OrderType = "STOP"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTakeProfit       OrderType = "TAKE_PROFIT"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
)

// TimeInForce governs how long an order stays active.
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC" // Good Till Cancel
	TimeInForceIOC TimeInForce = "IOC" // Immediate or Cancel
	TimeInForceFOK TimeInForce = "FOK" // Fill or Kill
	TimeInForceGTX TimeInForce = "GTX" // Post Only
)

var orderTypes = []OrderType{
	OrderTypeMarket,
	OrderTypeLimit,
	OrderTypeStop,
	OrderTypeStopMarket,
	OrderTypeTakeProfit,
	OrderTypeTakeProfitMarket,
}

var timeInForceValues = []TimeInForce{
	TimeInForceGTC,
	TimeInForceIOC,
	TimeInForceFOK,
	TimeInForceGTX,
}

// ParseSide converts an uppercased, trimmed string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	}
	return "", fmt.Errorf("Invalid order side: '%s'. Must be BUY or SELL", s)
}

// ParseOrderType converts an uppercased, trimmed string into an OrderType.
// The error message enumerates every accepted value.
func ParseOrderType(s string) (OrderType, error) {
	for _, t := range orderTypes {
		if OrderType(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("Invalid order type: '%s'. Valid types: %s", s, joinOrderTypes())
}

// ParseTimeInForce converts an uppercased, trimmed string into a TimeInForce.
// The error message enumerates every accepted value.
func ParseTimeInForce(s string) (TimeInForce, error) {
	for _, t := range timeInForceValues {
		if TimeInForce(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("Invalid time in force: '%s'. Valid values: %s", s, joinTimeInForce())
}

func joinOrderTypes() string {
	names := make([]string, len(orderTypes))
	for i, t := range orderTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinTimeInForce() string {
	names := make([]string, len(timeInForceValues))
	for i, t := range timeInForceValues {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// RequiresPrice reports whether the order type mandates a limit price.
func (t OrderType) RequiresPrice() bool {
	return t == OrderTypeLimit
}

// OrderSpec is a validated, internally consistent order, ready for signing.
// It is built once per invocation and never mutated.
type OrderSpec struct {
	Symbol      string
	Side        Side
	Type        OrderType
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	StopPrice   *decimal.Decimal
	TimeInForce TimeInForce // empty when not applicable
}
