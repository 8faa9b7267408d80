package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/agromandi/payment-service/internal/domain"
)

// Client talks to the Razorpay v1 REST API. Amounts are in paise.
type Client struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	client    *http.Client
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		client:    http.DefaultClient,
	}
}

type gatewayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type gatewayOrderResponse struct {
	ID string `json:"id"`
}

type gatewayCaptureRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type gatewayRefundRequest struct {
	Amount int64             `json:"amount"`
	Notes  map[string]string `json:"notes,omitempty"`
}

type gatewayRefundResponse struct {
	ID string `json:"id"`
}

type gatewayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	var resp gatewayOrderResponse
	err := c.do(ctx, http.MethodPost, "/orders", gatewayOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) CapturePayment(ctx context.Context, gatewayPaymentID string, amountMinor int64, currency string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/%s/capture", gatewayPaymentID), gatewayCaptureRequest{
		Amount:   amountMinor,
		Currency: currency,
	}, nil)
}

func (c *Client) CreateRefund(ctx context.Context, gatewayPaymentID string, amountMinor int64, notes map[string]string) (string, error) {
	var resp gatewayRefundResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/%s/refund", gatewayPaymentID), gatewayRefundRequest{
		Amount: amountMinor,
		Notes:  notes,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	response, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.Unmarshal(responseBodyBytes, out)
	}

	var errorResponse gatewayErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
		return fmt.Errorf("%w: gateway returned status %d", domain.ErrUpstream, response.StatusCode)
	}
	return fmt.Errorf("%w: %s", domain.ErrUpstream, errorResponse.Error.Description)
}
