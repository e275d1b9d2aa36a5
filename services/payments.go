package services

import (
	"fmt"
	"time"
)

// Mock payment processor. A real deployment would integrate Stripe or
// PayPal here; the contract is amount+currency+source in, success and a
// transaction reference out. Single attempt, no retry.

type PaymentResult struct {
	Success       bool    `json:"success"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

func ProcessPayment(amount float64, currency string, source string) (*PaymentResult, error) {
	return &PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("txn_%d", time.Now().UnixNano()),
		Amount:        amount,
		Currency:      currency,
	}, nil
}
