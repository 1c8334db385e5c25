package api

import (
	"context"

	"github.com/jrsteele09/clientconnect/crm"
)

func (c *Client) KPIs(ctx context.Context) (*crm.KPIs, error) {
	var out crm.KPIs
	if err := c.getJSON(ctx, "/api/dashboard/kpis", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Activities(ctx context.Context) ([]crm.Activity, error) {
	var out []crm.Activity
	if err := c.getJSON(ctx, "/api/dashboard/activities", &out); err != nil {
		return nil, err
	}
	return out, nil
}
