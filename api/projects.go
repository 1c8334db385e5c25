package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/clientconnect/crm"
)

func (c *Client) ListProjects(ctx context.Context) ([]crm.Project, error) {
	var out []crm.Project
	if err := c.getJSON(ctx, "/api/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, in crm.ProjectInput) (*crm.Project, error) {
	var out crm.Project
	if err := c.sendJSON(ctx, http.MethodPost, "/api/projects", in.Normalize(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (*crm.Project, error) {
	var out crm.Project
	if err := c.getJSON(ctx, fmt.Sprintf("/api/projects/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, in crm.ProjectInput) (*crm.Project, error) {
	var out crm.Project
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), in.Normalize(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, "", nil)
}
