package responses

// PaymentOrder is what the checkout page needs to open the gateway widget.
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"keyId"`
}
