package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

var testPayload = []byte(`{"type":"checkout.session.completed","data":{"object":{"client_reference_id":"10","customer_email":"buyer@example.com","amount_total":5000,"metadata":{"shippingAddress":"12 Nile St"}}}}`)

func TestConstructEvent(t *testing.T) {
	now := time.Now()

	t.Run("valid signature parses the event", func(t *testing.T) {
		header := SignatureHeader(now, testPayload, testSecret)

		ev, err := ConstructEvent(testPayload, header, testSecret, DefaultTolerance, now)

		assert.NoError(t, err)
		assert.Equal(t, EventCheckoutCompleted, ev.Type)
		assert.Equal(t, "10", ev.Data.Object.ClientReferenceID)
		assert.Equal(t, "buyer@example.com", ev.Data.Object.CustomerEmail)
		assert.Equal(t, int64(5000), ev.Data.Object.AmountTotal)
		assert.Equal(t, "12 Nile St", ev.Data.Object.Metadata["shippingAddress"])
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := SignatureHeader(now, testPayload, "other-secret")

		_, err := ConstructEvent(testPayload, header, testSecret, DefaultTolerance, now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := SignatureHeader(now, testPayload, testSecret)
		tampered := []byte(`{"type":"checkout.session.completed","data":{"object":{"amount_total":1}}}`)

		_, err := ConstructEvent(tampered, header, testSecret, DefaultTolerance, now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("stale timestamp outside tolerance", func(t *testing.T) {
		old := now.Add(-10 * time.Minute)
		header := SignatureHeader(old, testPayload, testSecret)

		_, err := ConstructEvent(testPayload, header, testSecret, DefaultTolerance, now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("malformed headers", func(t *testing.T) {
		for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=123"} {
			_, err := ConstructEvent(testPayload, header, testSecret, DefaultTolerance, now)
			assert.ErrorIs(t, err, ErrInvalidSignature, "header %q", header)
		}
	})

	t.Run("signed but unparseable body", func(t *testing.T) {
		garbage := []byte("not-json")
		header := SignatureHeader(now, garbage, testSecret)

		_, err := ConstructEvent(garbage, header, testSecret, DefaultTolerance, now)
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("second v1 signature is accepted", func(t *testing.T) {
		good := ComputeSignature(now, testPayload, testSecret)
		combined := SignatureHeader(now, testPayload, "rotated-out-secret") + ",v1=" + good

		ev, err := ConstructEvent(testPayload, combined, testSecret, DefaultTolerance, now)
		assert.NoError(t, err)
		assert.Equal(t, EventCheckoutCompleted, ev.Type)
	})
}
