package execution

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futures_go/internal/infra/binance"
)

// PaperExchange simulates the exchange without any network I/O. Orders
// are acknowledged locally: market orders fill at the configured mark
// price, everything else rests as NEW. Used for dry runs and
// pre-production validation.
type PaperExchange struct {
	log *slog.Logger

	mu         sync.Mutex
	nextID     int64
	openOrders map[int64]binance.OrderResponse
	prices     map[string]decimal.Decimal
}

// NewPaperExchange creates a paper exchange. A nil logger falls back to
// the default.
func NewPaperExchange(log *slog.Logger) *PaperExchange {
	if log == nil {
		log = slog.Default()
	}
	return &PaperExchange{
		log:        log,
		nextID:     1,
		openOrders: make(map[int64]binance.OrderResponse),
		prices:     make(map[string]decimal.Decimal),
	}
}

// SetPrice sets the simulated mark price for a symbol.
func (p *PaperExchange) SetPrice(symbol string, price decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices[symbol] = price
}

// PlaceOrder acknowledges the order locally.
func (p *PaperExchange) PlaceOrder(ctx context.Context, order binance.OrderRequest) (binance.OrderResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++

	clientID := order.NewClientOrderID
	if clientID == "" {
		clientID = "paper-" + uuid.NewString()
	}

	resp := binance.OrderResponse{
		OrderID:       id,
		ClientOrderID: clientID,
		Symbol:        order.Symbol,
		Status:        "NEW",
		Side:          order.Side,
		Type:          order.Type,
		OrigQty:       order.Quantity,
		ExecutedQty:   "0",
		Price:         order.Price,
		StopPrice:     order.StopPrice,
		TimeInForce:   order.TimeInForce,
		ReduceOnly:    order.ReduceOnly,
		UpdateTime:    time.Now().UnixMilli(),
	}

	// Market orders fill immediately at the simulated mark price.
	if order.Type == "MARKET" {
		resp.Status = "FILLED"
		resp.ExecutedQty = order.Quantity
		if mark, ok := p.prices[order.Symbol]; ok {
			resp.AvgPrice = mark.String()
		}
	} else {
		p.openOrders[id] = resp
	}

	p.log.Info("PAPER: order accepted",
		slog.Int64("order_id", id),
		slog.String("symbol", order.Symbol),
		slog.String("side", order.Side),
		slog.String("type", order.Type),
		slog.String("quantity", order.Quantity),
	)

	return resp, nil
}

// CancelOrder cancels a resting paper order.
func (p *PaperExchange) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (binance.OrderResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, ok := p.lookupLocked(orderID, clientOrderID)
	if !ok {
		return binance.OrderResponse{}, &binance.APIError{
			StatusCode: 400,
			Code:       -2011,
			Msg:        "Unknown order sent.",
		}
	}

	delete(p.openOrders, order.OrderID)
	order.Status = "CANCELED"
	order.UpdateTime = time.Now().UnixMilli()

	p.log.Info("PAPER: order cancelled", slog.Int64("order_id", order.OrderID), slog.String("symbol", symbol))
	return order, nil
}

// TickerPrice returns the simulated mark price, if one was set.
func (p *PaperExchange) TickerPrice(ctx context.Context, symbol string) (binance.TickerPrice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	price, ok := p.prices[symbol]
	if !ok {
		return binance.TickerPrice{}, fmt.Errorf("no simulated price for %s", symbol)
	}

	return binance.TickerPrice{
		Symbol: symbol,
		Price:  price.String(),
		Time:   time.Now().UnixMilli(),
	}, nil
}

func (p *PaperExchange) lookupLocked(orderID int64, clientOrderID string) (binance.OrderResponse, bool) {
	if order, ok := p.openOrders[orderID]; ok {
		return order, true
	}
	for _, order := range p.openOrders {
		if clientOrderID != "" && order.ClientOrderID == clientOrderID {
			return order, true
		}
	}
	return binance.OrderResponse{}, false
}
