package execution

import (
	"context"

	"futures_go/internal/infra/binance"
)

// Exchange defines the transport operations the order pipeline consumes.
// It abstracts away the difference between the live REST client and the
// paper executor.
type Exchange interface {
	// PlaceOrder submits a new order to the venue.
	PlaceOrder(ctx context.Context, order binance.OrderRequest) (binance.OrderResponse, error)

	// CancelOrder cancels an existing order by exchange or client order ID.
	CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (binance.OrderResponse, error)

	// TickerPrice fetches the last traded price for a symbol.
	TickerPrice(ctx context.Context, symbol string) (binance.TickerPrice, error)
}
