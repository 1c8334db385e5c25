package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/clientconnect/crm"
)

func (c *Client) CreateNote(ctx context.Context, in crm.NoteInput) (*crm.Note, error) {
	var out crm.Note
	if err := c.sendJSON(ctx, http.MethodPost, "/api/notes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, in crm.NoteInput) (*crm.Note, error) {
	var out crm.Note
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, "", nil)
}
