package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/clientconnect/crm"
)

func (c *Client) ListPayments(ctx context.Context) ([]crm.Payment, error) {
	var out []crm.Payment
	if err := c.getJSON(ctx, "/api/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePayment(ctx context.Context, in crm.PaymentInput) (*crm.Payment, error) {
	var out crm.Payment
	if err := c.sendJSON(ctx, http.MethodPost, "/api/payments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
