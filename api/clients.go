package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/clientconnect/crm"
)

func (c *Client) ListClients(ctx context.Context) ([]crm.Client, error) {
	var out []crm.Client
	if err := c.getJSON(ctx, "/api/clients", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateClient(ctx context.Context, in crm.ClientInput) (*crm.Client, error) {
	var out crm.Client
	if err := c.sendJSON(ctx, http.MethodPost, "/api/clients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetClient(ctx context.Context, id int64) (*crm.Client, error) {
	var out crm.Client
	if err := c.getJSON(ctx, fmt.Sprintf("/api/clients/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil, "", nil)
}

func (c *Client) ClientProjects(ctx context.Context, id int64) ([]crm.Project, error) {
	var out []crm.Project
	if err := c.getJSON(ctx, fmt.Sprintf("/api/clients/%d/projects", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClientNotes(ctx context.Context, id int64) ([]crm.Note, error) {
	var out []crm.Note
	if err := c.getJSON(ctx, fmt.Sprintf("/api/clients/%d/notes", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}
