package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutSession is the provider's session descriptor. The client is
// expected to redirect the buyer to URL.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionParams carries everything a hosted checkout page needs. The
// amount is in the provider's minor currency unit.
type SessionParams struct {
	AmountMinor     int64
	Currency        string
	ProductName     string
	CustomerEmail   string
	ClientReference string
	ShippingAddress string
	SuccessURL      string
	CancelURL       string
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p SessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", p.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.AmountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.ProductName)
	form.Set("customer_email", p.CustomerEmail)
	form.Set("client_reference_id", p.ClientReference)
	form.Set("metadata[shippingAddress]", p.ShippingAddress)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var s CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
