package binance

import (
	"encoding/json"
	"net/url"
)

// OrderRequest carries the parameters of a new order exactly as the
// exchange expects them. Numeric fields stay strings to preserve the
// caller's exact decimal representation on the wire.
type OrderRequest struct {
	Symbol           string
	Side             string
	Type             string
	Quantity         string
	Price            string
	StopPrice        string
	TimeInForce      string
	ReduceOnly       bool
	NewClientOrderID string
}

// Params converts the request into wire parameters. Optional fields are
// omitted entirely when unset.
func (r OrderRequest) Params() url.Values {
	params := url.Values{}
	params.Set("symbol", r.Symbol)
	params.Set("side", r.Side)
	params.Set("type", r.Type)
	params.Set("quantity", r.Quantity)

	if r.Price != "" {
		params.Set("price", r.Price)
	}
	if r.StopPrice != "" {
		params.Set("stopPrice", r.StopPrice)
	}
	if r.TimeInForce != "" {
		params.Set("timeInForce", r.TimeInForce)
	}
	if r.ReduceOnly {
		params.Set("reduceOnly", "true")
	}
	if r.NewClientOrderID != "" {
		params.Set("newClientOrderId", r.NewClientOrderID)
	}

	return params
}

// OrderResponse is the exchange's view of an order, returned by
// placement, cancellation, and order queries.
type OrderResponse struct {
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Symbol        string `json:"symbol"`
	Status        string `json:"status"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	Price         string `json:"price"`
	AvgPrice      string `json:"avgPrice"`
	StopPrice     string `json:"stopPrice"`
	TimeInForce   string `json:"timeInForce"`
	ReduceOnly    bool   `json:"reduceOnly"`
	UpdateTime    int64  `json:"updateTime"`

	// Raw is the undecoded response body, kept for diagnostics.
	Raw json.RawMessage `json:"-"`
}

// Cancel responses reuse clientOrderId under a different key.
type cancelOrderResponse struct {
	OrderResponse
	OrigClientOrderID string `json:"origClientOrderId"`
}

// ServerTime is the exchange clock reading.
type ServerTime struct {
	ServerTime int64 `json:"serverTime"`
}

// TickerPrice is the last traded price for a symbol.
type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   int64  `json:"time"`
}

// SymbolInfo holds the trading rules for one symbol.
type SymbolInfo struct {
	Symbol            string `json:"symbol"`
	Status            string `json:"status"`
	BaseAsset         string `json:"baseAsset"`
	QuoteAsset        string `json:"quoteAsset"`
	PricePrecision    int    `json:"pricePrecision"`
	QuantityPrecision int    `json:"quantityPrecision"`
}

// ExchangeInfo lists trading rules for every symbol.
type ExchangeInfo struct {
	ServerTime int64        `json:"serverTime"`
	Symbols    []SymbolInfo `json:"symbols"`
}

// AccountAsset is one asset entry in the account snapshot.
type AccountAsset struct {
	Asset            string `json:"asset"`
	WalletBalance    string `json:"walletBalance"`
	UnrealizedProfit string `json:"unrealizedProfit"`
	AvailableBalance string `json:"availableBalance"`
}

// AccountInfo is the futures account snapshot.
type AccountInfo struct {
	TotalWalletBalance    string         `json:"totalWalletBalance"`
	TotalUnrealizedProfit string         `json:"totalUnrealizedProfit"`
	AvailableBalance      string         `json:"availableBalance"`
	Assets                []AccountAsset `json:"assets"`
}

// PositionRisk is one position entry from the position risk endpoint.
type PositionRisk struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnRealizedProfit string `json:"unRealizedProfit"`
	Leverage         string `json:"leverage"`
	PositionSide     string `json:"positionSide"`
}
