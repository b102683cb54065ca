package payment

import "context"

type CheckoutClientInterface interface {
	CreateCheckoutSession(ctx context.Context, p SessionParams) (*CheckoutSession, error)
}

var _ CheckoutClientInterface = (*Client)(nil)
