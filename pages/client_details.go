package pages

import (
	"context"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ClientDetailsAPI interface {
	GetClient(ctx context.Context, id int64) (*crm.Client, error)
	ClientProjects(ctx context.Context, id int64) ([]crm.Project, error)
	ClientNotes(ctx context.Context, id int64) ([]crm.Note, error)
}

type ClientDetails struct {
	Page
	ClientID int64
	Client   *crm.Client
	Projects []crm.Project
	Notes    []crm.Note

	api ClientDetailsAPI
}

func NewClientDetails(api ClientDetailsAPI, clientID int64, opts Options) *ClientDetails {
	return &ClientDetails{Page: newPage(opts), ClientID: clientID, api: api}
}

// Mount loads the client with its projects and notes. Nothing is shown unless all three arrive.
func (d *ClientDetails) Mount(ctx context.Context) error {
	var (
		client   *crm.Client
		projects []crm.Project
		notes    []crm.Note
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		client, err = d.api.GetClient(gctx, d.ClientID)
		return err
	})
	g.Go(func() (err error) {
		projects, err = d.api.ClientProjects(gctx, d.ClientID)
		return err
	})
	g.Go(func() (err error) {
		notes, err = d.api.ClientNotes(gctx, d.ClientID)
		return err
	})
	err := g.Wait()
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		log.Err(err).Int64("client_id", d.ClientID).Msg("failed to fetch client data")
		d.Error = "Failed to fetch client data. Please try again."
		return err
	}

	d.Client = client
	d.Projects = projects
	d.Notes = newestNotesFirst(notes)
	return nil
}
