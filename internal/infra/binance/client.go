package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Constants for Binance USDT-M Futures API URLs
const (
	TestnetURL = "https://testnet.binancefuture.com"
	MainnetURL = "https://fapi.binance.com"

	// DefaultTimeout bounds every request; a slower exchange reply is a
	// NetworkError.
	DefaultTimeout = 30 * time.Second
)

// Client handles Binance USDT-M Futures REST API communication.
// One client serves one process invocation; Close wipes the keys.
type Client struct {
	baseURL    string
	signer     *Signer
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new Binance Futures REST client. Missing or empty
// credentials make the client unusable, so construction fails with an
// AuthError before any request can be attempted.
func NewClient(apiKey, apiSecret, baseURL string, log *slog.Logger) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, &AuthError{
			Msg: "API credentials not found. Set BINANCE_API_KEY and BINANCE_API_SECRET " +
				"environment variables or pass them to the constructor.",
		}
	}

	if baseURL == "" {
		baseURL = TestnetURL
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		signer:     NewSigner(apiKey, apiSecret),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log,
	}

	log.Info("Binance Futures client initialized", slog.String("base_url", c.baseURL))
	return c, nil
}

var signaturePattern = regexp.MustCompile(`signature=[0-9a-f]+`)

// redactSignature masks the signature value in a query string so request
// logging never exposes it.
func redactSignature(query string) string {
	return signaturePattern.ReplaceAllString(query, "signature=***")
}

// Request dispatches an API call and classifies the outcome. A successful
// response is returned as raw JSON; the client never interprets the
// business semantics of the payload. Only GET, POST, and DELETE are
// valid; any other method is a programming error and panics.
func (c *Client) Request(ctx context.Context, method, endpoint string, params url.Values, signed bool) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}

	var query string
	if signed {
		query = c.signer.SignedQuery(params)
	} else {
		query = params.Encode()
	}

	c.log.Debug("API request",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.String("params", redactSignature(query)),
	)

	var (
		req *http.Request
		err error
	)
	switch method {
	case http.MethodGet, http.MethodDelete:
		target := c.baseURL + endpoint
		if query != "" {
			target += "?" + query
		}
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(query))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		panic(fmt.Sprintf("binance: unsupported HTTP method %q", method))
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("X-MBX-APIKEY", c.signer.APIKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Request failed", slog.Any("error", err))
		return nil, &NetworkError{Op: "request " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read response from " + endpoint, Err: err}
	}

	c.log.Debug("API response",
		slog.Int("status", resp.StatusCode),
		slog.String("body", preview(body)),
	)

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != 0 {
			c.log.Error("API error", slog.Int("code", apiErr.Code), slog.String("msg", apiErr.Msg))
			return nil, &APIError{StatusCode: resp.StatusCode, Code: apiErr.Code, Msg: apiErr.Msg}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.RawMessage(body), nil
}

func preview(body []byte) string {
	const limit = 500
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

// ServerTime returns the exchange clock reading. Unsigned.
func (c *Client) ServerTime(ctx context.Context) (ServerTime, error) {
	var out ServerTime
	err := c.get(ctx, "/fapi/v1/time", nil, false, &out)
	return out, err
}

// ExchangeInfo returns trading rules for every symbol. Unsigned.
func (c *Client) ExchangeInfo(ctx context.Context) (ExchangeInfo, error) {
	var out ExchangeInfo
	err := c.get(ctx, "/fapi/v1/exchangeInfo", nil, false, &out)
	return out, err
}

// SymbolInfo returns the trading rules for one symbol, or nil when the
// exchange doesn't list it.
func (c *Client) SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error) {
	info, err := c.ExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}
	for i := range info.Symbols {
		if info.Symbols[i].Symbol == symbol {
			return &info.Symbols[i], nil
		}
	}
	return nil, nil
}

// AccountInfo returns the account snapshot including balances. Signed.
func (c *Client) AccountInfo(ctx context.Context) (AccountInfo, error) {
	var out AccountInfo
	err := c.get(ctx, "/fapi/v2/account", nil, true, &out)
	return out, err
}

// PositionRisk returns position information, optionally filtered by
// symbol. Signed.
func (c *Client) PositionRisk(ctx context.Context, symbol string) ([]PositionRisk, error) {
	params := url.Values{}
	if symbol != "" {
		params.Set("symbol", symbol)
	}
	var out []PositionRisk
	err := c.get(ctx, "/fapi/v2/positionRisk", params, true, &out)
	return out, err
}

// TickerPrice returns the last traded price for a symbol. Unsigned.
func (c *Client) TickerPrice(ctx context.Context, symbol string) (TickerPrice, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	var out TickerPrice
	err := c.get(ctx, "/fapi/v1/ticker/price", params, false, &out)
	return out, err
}

// PlaceOrder submits a new order. Signed POST.
func (c *Client) PlaceOrder(ctx context.Context, order OrderRequest) (OrderResponse, error) {
	c.log.Info("Placing order",
		slog.String("symbol", order.Symbol),
		slog.String("side", order.Side),
		slog.String("type", order.Type),
		slog.String("quantity", order.Quantity),
	)

	var out OrderResponse
	raw, err := c.Request(ctx, http.MethodPost, "/fapi/v1/order", order.Params(), true)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode order response: %w", err)
	}
	out.Raw = raw
	return out, nil
}

// CancelOrder cancels an existing order by exchange order ID or client
// order ID; at least one must be given.
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (OrderResponse, error) {
	params, err := orderLookupParams(symbol, orderID, clientOrderID)
	if err != nil {
		return OrderResponse{}, err
	}

	c.log.Info("Cancelling order", slog.String("symbol", symbol), slog.Int64("order_id", orderID))

	raw, err := c.Request(ctx, http.MethodDelete, "/fapi/v1/order", params, true)
	if err != nil {
		return OrderResponse{}, err
	}

	var out cancelOrderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return OrderResponse{}, fmt.Errorf("decode cancel response: %w", err)
	}
	if out.ClientOrderID == "" {
		out.ClientOrderID = out.OrigClientOrderID
	}
	return out.OrderResponse, nil
}

// GetOrder returns the details of one order by exchange order ID or
// client order ID; at least one must be given. Signed.
func (c *Client) GetOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (OrderResponse, error) {
	params, err := orderLookupParams(symbol, orderID, clientOrderID)
	if err != nil {
		return OrderResponse{}, err
	}

	var out OrderResponse
	err = c.get(ctx, "/fapi/v1/order", params, true, &out)
	return out, err
}

// OpenOrders returns all open orders, optionally filtered by symbol. Signed.
func (c *Client) OpenOrders(ctx context.Context, symbol string) ([]OrderResponse, error) {
	params := url.Values{}
	if symbol != "" {
		params.Set("symbol", symbol)
	}
	var out []OrderResponse
	err := c.get(ctx, "/fapi/v1/openOrders", params, true, &out)
	return out, err
}

// Close wipes the credentials and releases idle connections.
func (c *Client) Close() {
	c.signer.Wipe()
	c.httpClient.CloseIdleConnections()
	c.log.Info("Binance client closed")
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, signed bool, out any) error {
	raw, err := c.Request(ctx, http.MethodGet, endpoint, params, signed)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func orderLookupParams(symbol string, orderID int64, clientOrderID string) (url.Values, error) {
	if orderID == 0 && clientOrderID == "" {
		return nil, fmt.Errorf("either orderId or clientOrderId must be provided")
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	if orderID != 0 {
		params.Set("orderId", strconv.FormatInt(orderID, 10))
	}
	if clientOrderID != "" {
		params.Set("origClientOrderId", clientOrderID)
	}
	return params, nil
}
