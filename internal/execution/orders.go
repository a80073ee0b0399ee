package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futures_go/internal/domain"
	"futures_go/internal/infra/binance"
)

// RawOrder carries the caller's unparsed order parameters. The CLI layer
// fills it straight from flags; no parsing happens before validation.
type RawOrder struct {
	Symbol        string
	Side          string
	Type          string
	Quantity      string
	Price         string
	StopPrice     string
	TimeInForce   string
	ReduceOnly    bool
	ClientOrderID string
}

// OrderResult is the terminal artifact of one order invocation: either a
// success carrying the exchange-assigned identifiers, or a failure
// carrying a single human-readable message. Every execution path yields
// exactly one of the two.
type OrderResult struct {
	Success       bool
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Side          string
	Type          string
	Status        string
	Quantity      string
	ExecutedQty   string
	Price         string
	AvgPrice      string
	TimeInForce   string
	ErrorMessage  string

	// Raw is the undecoded exchange payload, kept for diagnostics only.
	Raw json.RawMessage
}

const resultRule = "=================================================="

func (r OrderResult) String() string {
	var b strings.Builder

	b.WriteString("\n" + resultRule + "\n")
	if !r.Success {
		b.WriteString("❌ ORDER FAILED\n")
		b.WriteString(resultRule + "\n")
		b.WriteString("Error: " + r.ErrorMessage + "\n")
		b.WriteString(resultRule)
		return b.String()
	}

	b.WriteString("✅ ORDER PLACED SUCCESSFULLY\n")
	b.WriteString(resultRule + "\n")
	fmt.Fprintf(&b, "Order ID      : %d\n", r.OrderID)
	fmt.Fprintf(&b, "Client ID     : %s\n", r.ClientOrderID)
	fmt.Fprintf(&b, "Symbol        : %s\n", r.Symbol)
	fmt.Fprintf(&b, "Side          : %s\n", r.Side)
	fmt.Fprintf(&b, "Type          : %s\n", r.Type)
	fmt.Fprintf(&b, "Status        : %s\n", r.Status)
	fmt.Fprintf(&b, "Quantity      : %s\n", r.Quantity)
	fmt.Fprintf(&b, "Executed Qty  : %s\n", r.ExecutedQty)
	fmt.Fprintf(&b, "Price         : %s\n", orDefault(r.Price, "MARKET"))
	fmt.Fprintf(&b, "Avg Price     : %s\n", orDefault(r.AvgPrice, "N/A"))
	fmt.Fprintf(&b, "Time in Force : %s\n", orDefault(r.TimeInForce, "N/A"))
	b.WriteString(resultRule)
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" || s == "0" {
		return def
	}
	return s
}

// CancelResult reports the outcome of an order cancellation.
type CancelResult struct {
	Success  bool
	Response *binance.OrderResponse
	Error    string
}

// OrderService orchestrates validation, signing, and response mapping
// for the order operations. It never lets an error or panic escape to
// the caller; every path produces a result value.
type OrderService struct {
	exchange  Exchange
	validator *domain.Validator
	log       *slog.Logger
}

// NewOrderService creates an OrderService. A nil logger falls back to
// the default.
func NewOrderService(exchange Exchange, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		exchange:  exchange,
		validator: domain.NewValidator(log),
		log:       log,
	}
}

// PlaceOrder validates the raw parameters, submits the order, and maps
// the response. Validation failures return before any transport call.
func (s *OrderService) PlaceOrder(ctx context.Context, raw RawOrder) (result OrderResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Unexpected error placing order", slog.Any("panic", r))
			result = OrderResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Unexpected error: %v", r),
			}
		}
	}()

	s.log.Info("Validating order parameters...")
	spec, err := s.validator.OrderParams(raw.Symbol, raw.Side, raw.Type, raw.Quantity, raw.Price, raw.StopPrice, raw.TimeInForce)
	if err != nil {
		s.log.Error("Validation error", slog.Any("error", err))
		return OrderResult{
			Success:      false,
			ErrorMessage: "Validation error: " + err.Error(),
		}
	}

	fmt.Println(FormatOrderSummary(spec))

	req := buildOrderRequest(spec, raw)

	s.log.Info("Sending order to exchange",
		slog.String("symbol", req.Symbol),
		slog.String("type", req.Type),
	)
	resp, err := s.exchange.PlaceOrder(ctx, req)
	if err != nil {
		return OrderResult{Success: false, ErrorMessage: classifyError(err)}
	}

	result = mapOrderResponse(resp)
	s.log.Info("Order placed successfully",
		slog.Int64("order_id", result.OrderID),
		slog.String("status", result.Status),
	)
	return result
}

// PlaceMarketOrder places a market order (convenience wrapper).
func (s *OrderService) PlaceMarketOrder(ctx context.Context, symbol, side, quantity string) OrderResult {
	return s.PlaceOrder(ctx, RawOrder{
		Symbol:   symbol,
		Side:     side,
		Type:     string(domain.OrderTypeMarket),
		Quantity: quantity,
	})
}

// PlaceLimitOrder places a limit order (convenience wrapper).
func (s *OrderService) PlaceLimitOrder(ctx context.Context, symbol, side, quantity, price, timeInForce string) OrderResult {
	return s.PlaceOrder(ctx, RawOrder{
		Symbol:      symbol,
		Side:        side,
		Type:        string(domain.OrderTypeLimit),
		Quantity:    quantity,
		Price:       price,
		TimeInForce: timeInForce,
	})
}

// PlaceStopMarketOrder places a stop market order (convenience wrapper).
func (s *OrderService) PlaceStopMarketOrder(ctx context.Context, symbol, side, quantity, stopPrice string) OrderResult {
	return s.PlaceOrder(ctx, RawOrder{
		Symbol:    symbol,
		Side:      side,
		Type:      string(domain.OrderTypeStopMarket),
		Quantity:  quantity,
		StopPrice: stopPrice,
	})
}

// CancelOrder cancels an existing order. At least one of orderID and
// clientOrderID is required; the check happens before any transport call.
func (s *OrderService) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) CancelResult {
	if orderID == 0 && clientOrderID == "" {
		s.log.Error("Cancel rejected: no order identifier given", slog.String("symbol", symbol))
		return CancelResult{
			Success: false,
			Error:   "either orderId or clientOrderId must be provided",
		}
	}

	s.log.Info("Cancelling order",
		slog.String("symbol", symbol),
		slog.Int64("order_id", orderID),
		slog.String("client_order_id", clientOrderID),
	)

	resp, err := s.exchange.CancelOrder(ctx, symbol, orderID, clientOrderID)
	if err != nil {
		s.log.Error("Failed to cancel order", slog.Any("error", err))
		return CancelResult{Success: false, Error: classifyError(err)}
	}

	s.log.Info("Order cancelled", slog.Int64("order_id", resp.OrderID), slog.String("status", resp.Status))
	return CancelResult{Success: true, Response: &resp}
}

// CurrentPrice returns the last ticker price for a symbol. Any failure
// is logged and reported as absent; this read path is intentionally
// lossy and must not be used for anything critical.
func (s *OrderService) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool) {
	ticker, err := s.exchange.TickerPrice(ctx, symbol)
	if err != nil {
		s.log.Error("Failed to get price", slog.String("symbol", symbol), slog.Any("error", err))
		return decimal.Decimal{}, false
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		s.log.Error("Malformed ticker price", slog.String("symbol", symbol), slog.String("price", ticker.Price))
		return decimal.Decimal{}, false
	}

	s.log.Info("Current price", slog.String("symbol", symbol), slog.String("price", price.String()))
	return price, true
}

// FormatOrderSummary renders the pre-submission diagnostic summary.
func FormatOrderSummary(spec domain.OrderSpec) string {
	var b strings.Builder

	b.WriteString("\n" + resultRule + "\n")
	b.WriteString("📋 ORDER REQUEST SUMMARY\n")
	b.WriteString(resultRule + "\n")
	fmt.Fprintf(&b, "Symbol        : %s\n", spec.Symbol)
	fmt.Fprintf(&b, "Side          : %s\n", spec.Side)
	fmt.Fprintf(&b, "Type          : %s\n", spec.Type)
	fmt.Fprintf(&b, "Quantity      : %s\n", spec.Quantity)

	if spec.Price != nil {
		fmt.Fprintf(&b, "Price         : %s\n", spec.Price)
	}
	if spec.StopPrice != nil {
		fmt.Fprintf(&b, "Stop Price    : %s\n", spec.StopPrice)
	}
	if spec.TimeInForce != "" {
		fmt.Fprintf(&b, "Time in Force : %s\n", spec.TimeInForce)
	}

	b.WriteString(resultRule)
	return b.String()
}

func buildOrderRequest(spec domain.OrderSpec, raw RawOrder) binance.OrderRequest {
	req := binance.OrderRequest{
		Symbol:           spec.Symbol,
		Side:             string(spec.Side),
		Type:             string(spec.Type),
		Quantity:         spec.Quantity.String(),
		TimeInForce:      string(spec.TimeInForce),
		ReduceOnly:       raw.ReduceOnly,
		NewClientOrderID: raw.ClientOrderID,
	}

	if spec.Price != nil {
		req.Price = spec.Price.String()
	}
	if spec.StopPrice != nil {
		req.StopPrice = spec.StopPrice.String()
	}
	if req.NewClientOrderID == "" {
		req.NewClientOrderID = newClientOrderID()
	}

	return req
}

// newClientOrderID generates a client order ID the exchange will echo
// back, so an order stays identifiable even if the response is lost.
func newClientOrderID() string {
	return "fgo-" + uuid.NewString()
}

func mapOrderResponse(resp binance.OrderResponse) OrderResult {
	return OrderResult{
		Success:       true,
		OrderID:       resp.OrderID,
		ClientOrderID: resp.ClientOrderID,
		Symbol:        resp.Symbol,
		Side:          resp.Side,
		Type:          resp.Type,
		Status:        resp.Status,
		Quantity:      resp.OrigQty,
		ExecutedQty:   resp.ExecutedQty,
		Price:         resp.Price,
		AvgPrice:      resp.AvgPrice,
		TimeInForce:   resp.TimeInForce,
		Raw:           resp.Raw,
	}
}

// classifyError maps transport failures onto the user-facing message
// categories. Anything outside the known taxonomy becomes an unexpected
// error rather than propagating raw.
func classifyError(err error) string {
	switch e := err.(type) {
	case *binance.APIError:
		return "Binance API error: " + e.Error()
	case *binance.NetworkError, *binance.HTTPError, *binance.AuthError:
		return "Client error: " + err.Error()
	default:
		return "Unexpected error: " + err.Error()
	}
}
