package pages

import (
	"context"
	"slices"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/feedback"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
)

type ClientsAPI interface {
	ListClients(ctx context.Context) ([]crm.Client, error)
	CreateClient(ctx context.Context, in crm.ClientInput) (*crm.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type Clients struct {
	Page
	Clients []crm.Client
	Form    crm.ClientInput
	Search  string
	Confirm feedback.Confirm

	api ClientsAPI
}

func NewClients(api ClientsAPI, opts Options) *Clients {
	return &Clients{
		Page:    newPage(opts),
		Confirm: feedback.Confirm{Title: "Confirm Deletion"},
		api:     api,
	}
}

func (c *Clients) Mount(ctx context.Context) error {
	clients, err := c.api.ListClients(ctx)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		c.fail(err, "Failed to fetch clients.")
		return err
	}
	c.Clients = clients
	return nil
}

// Filtered is the list narrowed by the search box.
func (c *Clients) Filtered() []crm.Client {
	out := make([]crm.Client, 0, len(c.Clients))
	for _, client := range c.Clients {
		if client.Matches(c.Search) {
			out = append(out, client)
		}
	}
	return out
}

// Create adds a client and appends the API's copy to the list. The form is kept on failure.
func (c *Clients) Create(ctx context.Context, in crm.ClientInput) error {
	c.Form = in
	if err := in.Validate(); err != nil {
		c.fail(err, "Error adding client.")
		return err
	}

	created, err := c.api.CreateClient(ctx, in)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		c.fail(err, "Error adding client.")
		return err
	}

	c.upsert(*created)
	c.Form = crm.ClientInput{}
	c.succeed("Client added successfully!")
	return nil
}

func (c *Clients) upsert(client crm.Client) {
	i := slices.IndexFunc(c.Clients, func(existing crm.Client) bool { return existing.ID == client.ID })
	if i >= 0 {
		c.Clients[i] = client
		return
	}
	c.Clients = append(c.Clients, client)
}

func (c *Clients) RequestDelete(id int64) { c.Confirm.Request(id) }

func (c *Clients) CancelDelete() { c.Confirm.Cancel() }

// ConfirmDelete deletes the client the modal was opened for. Without a pending
// confirmation nothing is sent and the list is untouched.
func (c *Clients) ConfirmDelete(ctx context.Context) error {
	id, ok := c.Confirm.Take()
	if !ok {
		return apperrors.ErrNothingToDelete
	}

	err := c.api.DeleteClient(ctx, id)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		c.fail(err, "Error deleting client.")
		return err
	}

	c.Clients = slices.DeleteFunc(c.Clients, func(client crm.Client) bool { return client.ID == id })
	c.succeed("Client deleted successfully!")
	return nil
}

// PendingDelete returns the client awaiting confirmation.
func (c *Clients) PendingDelete() *crm.Client {
	id, ok := c.Confirm.Pending()
	if !ok {
		return nil
	}
	for i := range c.Clients {
		if c.Clients[i].ID == id {
			return &c.Clients[i]
		}
	}
	return nil
}
