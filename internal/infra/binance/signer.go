package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// Signer authenticates USDT-M futures requests.
// It stores keys as []byte to allow memory wiping after use.
type Signer struct {
	apiKey    []byte
	secretKey []byte
}

// NewSigner creates a new signer.
func NewSigner(apiKey, secretKey string) *Signer {
	return &Signer{
		apiKey:    []byte(apiKey),
		secretKey: []byte(secretKey),
	}
}

// APIKey returns the key sent in the X-MBX-APIKEY header.
func (s *Signer) APIKey() string {
	return string(s.apiKey)
}

// Wipe clears the keys from memory.
func (s *Signer) Wipe() {
	if s == nil {
		return
	}
	wipeSlice(s.apiKey)
	wipeSlice(s.secretKey)
}

func wipeSlice(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SignedQuery appends a millisecond timestamp, signs the canonically
// encoded parameter set, and returns the query string with the signature
// as the final parameter. The signature covers everything before it.
func (s *Signer) SignedQuery(params url.Values) string {
	params.Set("timestamp", timestampMillis())
	payload := params.Encode()
	return payload + "&signature=" + s.signPayload(payload)
}

func (s *Signer) signPayload(payload string) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func timestampMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
