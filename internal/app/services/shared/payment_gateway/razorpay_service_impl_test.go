package payment_gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func signCheckout(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	service := &razorpayService{
		keySecret: "test-key-secret",
		Log:       zap.NewNop(),
	}

	t.Run("Valid signature passes", func(t *testing.T) {
		signature := signCheckout("test-key-secret", "order_abc", "pay_xyz")
		assert.True(t, service.VerifySignature("order_abc", "pay_xyz", signature))
	})

	t.Run("Signature over different ids fails", func(t *testing.T) {
		signature := signCheckout("test-key-secret", "order_abc", "pay_other")
		assert.False(t, service.VerifySignature("order_abc", "pay_xyz", signature))
	})

	t.Run("Signature from a different secret fails", func(t *testing.T) {
		signature := signCheckout("wrong-secret", "order_abc", "pay_xyz")
		assert.False(t, service.VerifySignature("order_abc", "pay_xyz", signature))
	})

	t.Run("Empty signature fails", func(t *testing.T) {
		assert.False(t, service.VerifySignature("order_abc", "pay_xyz", ""))
	})
}

func TestMapOrderBody(t *testing.T) {
	t.Run("Well formed body", func(t *testing.T) {
		order, err := mapOrderBody(map[string]interface{}{
			"id":       "order_abc",
			"amount":   float64(50000),
			"currency": "INR",
			"receipt":  "apt-1",
			"status":   "paid",
		})
		assert.NoError(t, err)
		assert.Equal(t, "order_abc", order.ID)
		assert.Equal(t, int64(50000), order.Amount)
		assert.Equal(t, "INR", order.Currency)
		assert.Equal(t, "apt-1", order.Receipt)
		assert.Equal(t, "paid", order.Status)
	})

	t.Run("Missing id", func(t *testing.T) {
		_, err := mapOrderBody(map[string]interface{}{"amount": float64(1)})
		assert.Error(t, err)
	})
}

func TestMapPaymentItems(t *testing.T) {
	t.Run("Well formed collection", func(t *testing.T) {
		payments := mapPaymentItems(map[string]interface{}{
			"count": float64(2),
			"items": []interface{}{
				map[string]interface{}{"id": "pay_1", "status": "failed"},
				map[string]interface{}{"id": "pay_2", "status": "captured"},
			},
		})
		assert.Len(t, payments, 2)
		assert.Equal(t, "pay_2", payments[1].ID)
		assert.Equal(t, "captured", payments[1].Status)
	})

	t.Run("Entries without an id are dropped", func(t *testing.T) {
		payments := mapPaymentItems(map[string]interface{}{
			"items": []interface{}{
				map[string]interface{}{"status": "captured"},
				"garbage",
			},
		})
		assert.Empty(t, payments)
	})

	t.Run("Missing items", func(t *testing.T) {
		assert.Empty(t, mapPaymentItems(map[string]interface{}{"count": float64(0)}))
	})
}
