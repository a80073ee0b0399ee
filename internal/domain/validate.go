package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationCode identifies why a field was rejected.
type ValidationCode string

const (
	CodeEmpty                ValidationCode = "EMPTY"
	CodeInvalidFormat        ValidationCode = "INVALID_FORMAT"
	CodeInvalidValue         ValidationCode = "INVALID_VALUE"
	CodeNotPositive          ValidationCode = "NOT_POSITIVE"
	CodeTooSmall             ValidationCode = "TOO_SMALL"
	CodeMissingRequiredField ValidationCode = "MISSING_REQUIRED_FIELD"
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field string
	Code  ValidationCode
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

var symbolPattern = regexp.MustCompile(`^[A-Z]{5,12}$`)

// MinQuantity is the minimum accepted order quantity. Real per-symbol
// minimums come from exchange info; this is the floor below which no
// USDT-M symbol trades. The boundary is inclusive: exactly MinQuantity
// is valid.
var MinQuantity = decimal.RequireFromString("0.00001")

// Validator turns raw string parameters into an OrderSpec.
// Non-fatal findings (suspicious symbol suffix, ignored price) are
// reported through the injected logger, not as failures.
type Validator struct {
	log *slog.Logger
}

// NewValidator creates a Validator. A nil logger falls back to the default.
func NewValidator(log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	return &Validator{log: log}
}

// Symbol normalizes and validates a trading pair symbol.
func (v *Validator) Symbol(symbol string) (string, error) {
	if symbol == "" {
		return "", &ValidationError{Field: "symbol", Code: CodeEmpty, Msg: "Symbol cannot be empty"}
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if !symbolPattern.MatchString(symbol) {
		return "", &ValidationError{
			Field: "symbol",
			Code:  CodeInvalidFormat,
			Msg:   fmt.Sprintf("Invalid symbol format: '%s'. Symbol should be 5-12 uppercase letters (e.g., BTCUSDT)", symbol),
		}
	}

	if !strings.HasSuffix(symbol, "USDT") && !strings.HasSuffix(symbol, "BUSD") {
		v.log.Warn("Symbol doesn't end with USDT/BUSD. Make sure it's a valid USDT-M pair.",
			slog.String("symbol", symbol))
	}

	return symbol, nil
}

// Side validates the order side.
func (v *Validator) Side(side string) (Side, error) {
	if side == "" {
		return "", &ValidationError{Field: "side", Code: CodeEmpty, Msg: "Order side cannot be empty"}
	}

	parsed, err := ParseSide(strings.ToUpper(strings.TrimSpace(side)))
	if err != nil {
		return "", &ValidationError{Field: "side", Code: CodeInvalidValue, Msg: err.Error()}
	}
	return parsed, nil
}

// OrderType validates the order type.
func (v *Validator) OrderType(orderType string) (OrderType, error) {
	if orderType == "" {
		return "", &ValidationError{Field: "type", Code: CodeEmpty, Msg: "Order type cannot be empty"}
	}

	parsed, err := ParseOrderType(strings.ToUpper(strings.TrimSpace(orderType)))
	if err != nil {
		return "", &ValidationError{Field: "type", Code: CodeInvalidValue, Msg: err.Error()}
	}
	return parsed, nil
}

// Quantity validates the order quantity as an exact decimal.
func (v *Validator) Quantity(quantity string) (decimal.Decimal, error) {
	if quantity == "" {
		return decimal.Decimal{}, &ValidationError{Field: "quantity", Code: CodeEmpty, Msg: "Quantity cannot be empty"}
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil {
		return decimal.Decimal{}, &ValidationError{
			Field: "quantity",
			Code:  CodeInvalidFormat,
			Msg:   fmt.Sprintf("Invalid quantity format: '%s'", quantity),
		}
	}

	if qty.Sign() <= 0 {
		return decimal.Decimal{}, &ValidationError{
			Field: "quantity",
			Code:  CodeNotPositive,
			Msg:   fmt.Sprintf("Quantity must be positive, got: %s", qty),
		}
	}

	if qty.LessThan(MinQuantity) {
		return decimal.Decimal{}, &ValidationError{
			Field: "quantity",
			Code:  CodeTooSmall,
			Msg:   fmt.Sprintf("Quantity too small: %s", qty),
		}
	}

	return qty, nil
}

// Price validates the order price against the order type. MARKET orders
// never carry a price; a supplied one is ignored with a warning.
func (v *Validator) Price(price string, orderType OrderType) (*decimal.Decimal, error) {
	if orderType.RequiresPrice() && price == "" {
		return nil, &ValidationError{
			Field: "price",
			Code:  CodeMissingRequiredField,
			Msg:   "Price is required for LIMIT orders",
		}
	}

	if orderType == OrderTypeMarket {
		if price != "" {
			v.log.Warn("Price provided for MARKET order will be ignored")
		}
		return nil, nil
	}

	if price == "" {
		return nil, nil
	}

	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil, &ValidationError{
			Field: "price",
			Code:  CodeInvalidFormat,
			Msg:   fmt.Sprintf("Invalid price format: '%s'", price),
		}
	}

	if p.Sign() <= 0 {
		return nil, &ValidationError{
			Field: "price",
			Code:  CodeNotPositive,
			Msg:   fmt.Sprintf("Price must be positive, got: %s", p),
		}
	}

	return &p, nil
}

// StopPrice validates the optional stop trigger price.
func (v *Validator) StopPrice(stopPrice string) (*decimal.Decimal, error) {
	if stopPrice == "" {
		return nil, nil
	}

	sp, err := decimal.NewFromString(strings.TrimSpace(stopPrice))
	if err != nil {
		return nil, &ValidationError{
			Field: "stopPrice",
			Code:  CodeInvalidFormat,
			Msg:   fmt.Sprintf("Invalid stop price format: '%s'", stopPrice),
		}
	}

	if sp.Sign() <= 0 {
		return nil, &ValidationError{
			Field: "stopPrice",
			Code:  CodeNotPositive,
			Msg:   fmt.Sprintf("Stop price must be positive, got: %s", sp),
		}
	}

	return &sp, nil
}

// TimeInForce validates the time in force against the order type.
// MARKET orders never carry one; LIMIT orders default to GTC.
func (v *Validator) TimeInForce(tif string, orderType OrderType) (TimeInForce, error) {
	if orderType == OrderTypeMarket {
		return "", nil
	}

	if tif == "" {
		if orderType == OrderTypeLimit {
			return TimeInForceGTC, nil
		}
		return "", nil
	}

	parsed, err := ParseTimeInForce(strings.ToUpper(strings.TrimSpace(tif)))
	if err != nil {
		return "", &ValidationError{Field: "timeInForce", Code: CodeInvalidValue, Msg: err.Error()}
	}
	return parsed, nil
}

// OrderParams validates all order parameters in the fixed order
// symbol, side, type, quantity, price, stop price, time in force and
// returns the first failure encountered.
func (v *Validator) OrderParams(symbol, side, orderType, quantity, price, stopPrice, timeInForce string) (OrderSpec, error) {
	validSymbol, err := v.Symbol(symbol)
	if err != nil {
		return OrderSpec{}, err
	}

	validSide, err := v.Side(side)
	if err != nil {
		return OrderSpec{}, err
	}

	validType, err := v.OrderType(orderType)
	if err != nil {
		return OrderSpec{}, err
	}

	validQty, err := v.Quantity(quantity)
	if err != nil {
		return OrderSpec{}, err
	}

	validPrice, err := v.Price(price, validType)
	if err != nil {
		return OrderSpec{}, err
	}

	validStop, err := v.StopPrice(stopPrice)
	if err != nil {
		return OrderSpec{}, err
	}

	validTIF, err := v.TimeInForce(timeInForce, validType)
	if err != nil {
		return OrderSpec{}, err
	}

	spec := OrderSpec{
		Symbol:      validSymbol,
		Side:        validSide,
		Type:        validType,
		Quantity:    validQty,
		Price:       validPrice,
		StopPrice:   validStop,
		TimeInForce: validTIF,
	}

	v.log.Debug("Order parameters validated",
		slog.String("symbol", spec.Symbol),
		slog.String("side", string(spec.Side)),
		slog.String("type", string(spec.Type)),
		slog.String("quantity", spec.Quantity.String()),
	)

	return spec, nil
}
