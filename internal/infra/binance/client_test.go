package binance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// MockRoundTripper allows us to mock HTTP responses.
type MockRoundTripper struct {
	Calls int
	Func  func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Calls++
	return m.Func(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, rt http.RoundTripper) *Client {
	t.Helper()
	client, err := NewClient("test_key", "test_secret", TestnetURL, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	client.httpClient.Transport = rt
	return client
}

func TestNewClient_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		secret string
	}{
		{"both empty", "", ""},
		{"no key", "", "secret"},
		{"no secret", "key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.key, tt.secret, TestnetURL, nil)
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %T: %v", err, err)
			}
		})
	}
}

func TestClient_PlaceOrder(t *testing.T) {
	rt := &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/fapi/v1/order" {
				t.Errorf("unexpected path: %s", req.URL.Path)
			}
			if req.Method != http.MethodPost {
				t.Errorf("unexpected method: %s", req.Method)
			}
			if req.Header.Get("X-MBX-APIKEY") != "test_key" {
				t.Errorf("missing API key header")
			}

			body, _ := io.ReadAll(req.Body)
			form := string(body)
			for _, want := range []string{"symbol=BTCUSDT", "side=BUY", "type=MARKET", "quantity=0.001", "timestamp=", "signature="} {
				if !strings.Contains(form, want) {
					t.Errorf("form body missing %q: %s", want, form)
				}
			}
			if tail := form[strings.LastIndex(form, "&signature=")+len("&signature="):]; strings.Contains(tail, "&") {
				t.Errorf("signature should be the final parameter: %s", form)
			}

			return jsonResponse(200, `{"orderId":12345,"clientOrderId":"abc","symbol":"BTCUSDT","status":"FILLED","side":"BUY","type":"MARKET","origQty":"0.001","executedQty":"0.001","avgPrice":"43210.5"}`), nil
		},
	}
	client := newTestClient(t, rt)

	resp, err := client.PlaceOrder(context.Background(), OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Type:     "MARKET",
		Quantity: "0.001",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if resp.OrderID != 12345 {
		t.Errorf("orderId = %d, want 12345", resp.OrderID)
	}
	if resp.Status != "FILLED" {
		t.Errorf("status = %s, want FILLED", resp.Status)
	}
	if len(resp.Raw) == 0 {
		t.Error("raw payload not retained")
	}
	if rt.Calls != 1 {
		t.Errorf("transport calls = %d, want 1", rt.Calls)
	}
}

func TestClient_Request_APIError(t *testing.T) {
	client := newTestClient(t, &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(400, `{"code":-2010,"msg":"Insufficient balance"}`), nil
		},
	})

	_, err := client.PlaceOrder(context.Background(), OrderRequest{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "1"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != -2010 {
		t.Errorf("code = %d, want -2010", apiErr.Code)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Error(), "-2010") || !strings.Contains(apiErr.Error(), "Insufficient balance") {
		t.Errorf("error message should carry code and msg: %v", apiErr)
	}
}

func TestClient_Request_HTTPErrorWithoutAPIShape(t *testing.T) {
	client := newTestClient(t, &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(502, `<html>Bad Gateway</html>`), nil
		},
	})

	_, err := client.ServerTime(context.Background())

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != 502 {
		t.Errorf("status = %d, want 502", httpErr.StatusCode)
	}
}

func TestClient_Request_NetworkError(t *testing.T) {
	client := newTestClient(t, &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	})

	_, err := client.ServerTime(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestClient_TickerPrice_Unsigned(t *testing.T) {
	client := newTestClient(t, &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/fapi/v1/ticker/price" {
				t.Errorf("unexpected path: %s", req.URL.Path)
			}
			query := req.URL.RawQuery
			if strings.Contains(query, "signature=") || strings.Contains(query, "timestamp=") {
				t.Errorf("unsigned request must not carry auth params: %s", query)
			}
			return jsonResponse(200, `{"symbol":"BTCUSDT","price":"43000.10","time":1700000000000}`), nil
		},
	})

	ticker, err := client.TickerPrice(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("TickerPrice failed: %v", err)
	}
	if ticker.Price != "43000.10" {
		t.Errorf("price = %s, want 43000.10", ticker.Price)
	}
}

func TestClient_CancelOrder_RequiresIdentifier(t *testing.T) {
	rt := &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			t.Fatal("no request should be sent")
			return nil, nil
		},
	}
	client := newTestClient(t, rt)

	_, err := client.CancelOrder(context.Background(), "BTCUSDT", 0, "")
	if err == nil {
		t.Fatal("expected error when neither identifier is given")
	}
	if rt.Calls != 0 {
		t.Errorf("transport calls = %d, want 0", rt.Calls)
	}
}

func TestClient_CancelOrder_ByClientOrderID(t *testing.T) {
	client := newTestClient(t, &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodDelete {
				t.Errorf("unexpected method: %s", req.Method)
			}
			if !strings.Contains(req.URL.RawQuery, "origClientOrderId=my-id") {
				t.Errorf("query missing origClientOrderId: %s", req.URL.RawQuery)
			}
			return jsonResponse(200, `{"orderId":7,"origClientOrderId":"my-id","symbol":"BTCUSDT","status":"CANCELED"}`), nil
		},
	})

	resp, err := client.CancelOrder(context.Background(), "BTCUSDT", 0, "my-id")
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if resp.Status != "CANCELED" {
		t.Errorf("status = %s, want CANCELED", resp.Status)
	}
	if resp.ClientOrderID != "my-id" {
		t.Errorf("clientOrderId = %s, want my-id", resp.ClientOrderID)
	}
}

func TestClient_Request_UnsupportedMethodPanics(t *testing.T) {
	client := newTestClient(t, &MockRoundTripper{
		Func: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `{}`), nil
		},
	})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported method")
		}
	}()
	client.Request(context.Background(), http.MethodPut, "/fapi/v1/order", nil, false)
}

func TestRedactSignature(t *testing.T) {
	in := "symbol=BTCUSDT&timestamp=1700000000000&signature=deadbeef0123456789abcdef"
	got := redactSignature(in)
	if strings.Contains(got, "deadbeef") {
		t.Errorf("signature leaked: %s", got)
	}
	if !strings.Contains(got, "signature=***") {
		t.Errorf("signature not masked: %s", got)
	}
	if !strings.Contains(got, "symbol=BTCUSDT") {
		t.Errorf("non-sensitive params must survive redaction: %s", got)
	}
}
