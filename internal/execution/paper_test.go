package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"futures_go/internal/infra/binance"
)

// Compile-time interface checks.
var (
	_ Exchange = (*PaperExchange)(nil)
	_ Exchange = (*MockExchange)(nil)
)

func TestPaperExchange_MarketOrderFillsAtMark(t *testing.T) {
	paper := NewPaperExchange(nil)
	paper.SetPrice("BTCUSDT", decimal.RequireFromString("43000.5"))

	resp, err := paper.PlaceOrder(context.Background(), binance.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Type:     "MARKET",
		Quantity: "0.001",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if resp.Status != "FILLED" {
		t.Errorf("status = %s, want FILLED", resp.Status)
	}
	if resp.ExecutedQty != "0.001" {
		t.Errorf("executedQty = %s, want 0.001", resp.ExecutedQty)
	}
	if resp.AvgPrice != "43000.5" {
		t.Errorf("avgPrice = %s, want 43000.5", resp.AvgPrice)
	}
	if resp.ClientOrderID == "" {
		t.Error("expected a generated client order id")
	}
}

func TestPaperExchange_LimitOrderRestsAndCancels(t *testing.T) {
	paper := NewPaperExchange(nil)

	resp, err := paper.PlaceOrder(context.Background(), binance.OrderRequest{
		Symbol:      "BTCUSDT",
		Side:        "SELL",
		Type:        "LIMIT",
		Quantity:    "0.001",
		Price:       "50000",
		TimeInForce: "GTC",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if resp.Status != "NEW" {
		t.Errorf("status = %s, want NEW", resp.Status)
	}

	cancelled, err := paper.CancelOrder(context.Background(), "BTCUSDT", resp.OrderID, "")
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.Status != "CANCELED" {
		t.Errorf("status = %s, want CANCELED", cancelled.Status)
	}

	// A second cancel must behave like the real exchange.
	_, err = paper.CancelOrder(context.Background(), "BTCUSDT", resp.OrderID, "")
	var apiErr *binance.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *binance.APIError, got %T: %v", err, err)
	}
	if apiErr.Code != -2011 {
		t.Errorf("code = %d, want -2011", apiErr.Code)
	}
}

func TestPaperExchange_CancelByClientOrderID(t *testing.T) {
	paper := NewPaperExchange(nil)

	resp, err := paper.PlaceOrder(context.Background(), binance.OrderRequest{
		Symbol:           "ETHUSDT",
		Side:             "BUY",
		Type:             "LIMIT",
		Quantity:         "1",
		Price:            "2000",
		TimeInForce:      "GTC",
		NewClientOrderID: "my-paper-order",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	cancelled, err := paper.CancelOrder(context.Background(), "ETHUSDT", 0, "my-paper-order")
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.OrderID != resp.OrderID {
		t.Errorf("cancelled orderId = %d, want %d", cancelled.OrderID, resp.OrderID)
	}
}

func TestPaperExchange_TickerPrice(t *testing.T) {
	paper := NewPaperExchange(nil)
	paper.SetPrice("BTCUSDT", decimal.NewFromInt(43000))

	ticker, err := paper.TickerPrice(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("TickerPrice failed: %v", err)
	}
	if ticker.Price != "43000" {
		t.Errorf("price = %s, want 43000", ticker.Price)
	}

	if _, err := paper.TickerPrice(context.Background(), "DOGEUSDT"); err == nil {
		t.Error("expected error for symbol without a simulated price")
	}
}

func TestPaperExchange_OrderIDsIncrease(t *testing.T) {
	paper := NewPaperExchange(nil)

	var last int64
	for i := 0; i < 3; i++ {
		resp, err := paper.PlaceOrder(context.Background(), binance.OrderRequest{
			Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.001",
		})
		if err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
		if resp.OrderID <= last {
			t.Fatalf("order ids must be strictly increasing: %d after %d", resp.OrderID, last)
		}
		last = resp.OrderID
	}
}
