package domain

import (
	"strings"
	"testing"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"BUY", SideBuy, false},
		{"SELL", SideSell, false},
		{"HOLD", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSide(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSide(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSide_ErrorEnumeratesValues(t *testing.T) {
	_, err := ParseSide("HODL")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "BUY or SELL") {
		t.Errorf("error should list valid sides, got: %v", err)
	}
}

func TestParseOrderType(t *testing.T) {
	valid := []string{"MARKET", "LIMIT", "STOP", "STOP_MARKET", "TAKE_PROFIT", "TAKE_PROFIT_MARKET"}
	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := ParseOrderType(in)
			if err != nil {
				t.Fatalf("ParseOrderType(%q) unexpected error: %v", in, err)
			}
			if string(got) != in {
				t.Errorf("ParseOrderType(%q) = %v", in, got)
			}
		})
	}
}

func TestParseOrderType_ErrorEnumeratesValues(t *testing.T) {
	_, err := ParseOrderType("TRAILING_STOP")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"MARKET", "LIMIT", "STOP", "STOP_MARKET", "TAKE_PROFIT", "TAKE_PROFIT_MARKET"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should enumerate %q, got: %v", want, err)
		}
	}
}

func TestParseTimeInForce_ErrorEnumeratesValues(t *testing.T) {
	_, err := ParseTimeInForce("DAY")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"GTC", "IOC", "FOK", "GTX"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should enumerate %q, got: %v", want, err)
		}
	}
}

func TestOrderType_RequiresPrice(t *testing.T) {
	tests := []struct {
		typ  OrderType
		want bool
	}{
		{OrderTypeLimit, true},
		{OrderTypeMarket, false},
		{OrderTypeStopMarket, false},
		{OrderTypeTakeProfit, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.RequiresPrice(); got != tt.want {
				t.Errorf("%s.RequiresPrice() = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}
