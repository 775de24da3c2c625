package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront-be/internal/payment"
)

// DefaultTolerance bounds how old a signed webhook may be before it is
// rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

// Verifier checks gateway webhook signatures of the form
// "t=<unix>,v1=<hex hmac>" where the HMAC-SHA256 input is "<t>.<raw body>".
type Verifier struct {
	secret    []byte
	tolerance time.Duration
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), tolerance: DefaultTolerance}
}

// Verify validates header against body. Multiple v1 entries are accepted to
// allow secret rotation on the gateway side.
func (v *Verifier) Verify(header string, body []byte, now time.Time) error {
	timestamp, sigs, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return payment.ErrStaleSignature.With("timestamp", timestamp)
	}

	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	expected := mac.Sum(nil)

	for _, sig := range sigs {
		got, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return payment.ErrInvalidSignature
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var sigs []string

	for _, part := range strings.Split(header, ",") {
		key, val, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			t, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return 0, nil, payment.ErrInvalidSignature.With("reason", "bad timestamp")
			}
			timestamp = t
		case "v1":
			sigs = append(sigs, val)
		}
	}

	if timestamp == 0 || len(sigs) == 0 {
		return 0, nil, payment.ErrInvalidSignature.With("reason", "missing t or v1 element")
	}
	return timestamp, sigs, nil
}
