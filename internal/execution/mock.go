package execution

import (
	"context"

	"futures_go/internal/infra/binance"
)

// MockExchange is a recording test double. Each call increments its
// counter and delegates to the matching func when one is set; otherwise
// a zero value is returned.
type MockExchange struct {
	PlaceOrderCalls  int
	CancelOrderCalls int
	TickerPriceCalls int

	PlaceOrderFunc  func(ctx context.Context, order binance.OrderRequest) (binance.OrderResponse, error)
	CancelOrderFunc func(ctx context.Context, symbol string, orderID int64, clientOrderID string) (binance.OrderResponse, error)
	TickerPriceFunc func(ctx context.Context, symbol string) (binance.TickerPrice, error)
}

func NewMockExchange() *MockExchange {
	return &MockExchange{}
}

func (m *MockExchange) PlaceOrder(ctx context.Context, order binance.OrderRequest) (binance.OrderResponse, error) {
	m.PlaceOrderCalls++
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, order)
	}
	return binance.OrderResponse{}, nil
}

func (m *MockExchange) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (binance.OrderResponse, error) {
	m.CancelOrderCalls++
	if m.CancelOrderFunc != nil {
		return m.CancelOrderFunc(ctx, symbol, orderID, clientOrderID)
	}
	return binance.OrderResponse{}, nil
}

func (m *MockExchange) TickerPrice(ctx context.Context, symbol string) (binance.TickerPrice, error) {
	m.TickerPriceCalls++
	if m.TickerPriceFunc != nil {
		return m.TickerPriceFunc(ctx, symbol)
	}
	return binance.TickerPrice{}, nil
}
