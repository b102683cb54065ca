package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventCheckoutCompleted is the only event type that drives order
// creation; every other type is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// DefaultTolerance bounds how old a signed event may be.
const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedPayload covers a correctly signed body that does not
	// parse as an event.
	ErrMalformedPayload = errors.New("malformed event payload")
)

// Event is a provider payment notification.
type Event struct {
	Type string `json:"type"`
	Data struct {
		Object SessionObject `json:"object"`
	} `json:"data"`
}

// SessionObject is the completed-checkout payload. AmountTotal is in
// minor currency units.
type SessionObject struct {
	ClientReferenceID string            `json:"client_reference_id"`
	CustomerEmail     string            `json:"customer_email"`
	AmountTotal       int64             `json:"amount_total"`
	Metadata          map[string]string `json:"metadata"`
}

// ComputeSignature signs "<timestamp>.<payload>" with HMAC-SHA256.
func ComputeSignature(t time.Time, payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.%s", t.Unix(), payload)
	return hex.EncodeToString(h.Sum(nil))
}

// SignatureHeader renders the header a provider would send, usable for
// outbound test traffic.
func SignatureHeader(t time.Time, payload []byte, secret string) string {
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), ComputeSignature(t, payload, secret))
}

// ConstructEvent verifies the signature header against the raw payload
// and parses the event. The header carries a unix timestamp and one or
// more v1 signatures: "t=<unix>,v1=<hex>[,v1=<hex>...]".
func ConstructEvent(payload []byte, header, secret string, tolerance time.Duration, now time.Time) (*Event, error) {
	ts, sigs, err := parseSignatureHeader(header)
	if err != nil {
		return nil, err
	}

	if tolerance > 0 && now.Sub(time.Unix(ts, 0)) > tolerance {
		return nil, ErrInvalidSignature
	}

	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.%s", ts, payload)
	expected := h.Sum(nil)

	valid := false
	for _, sig := range sigs {
		raw, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(raw, expected) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidSignature
	}

	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &ev, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var ts int64 = -1
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			ts = parsed
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts < 0 || len(sigs) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return ts, sigs, nil
}
