package pages

import (
	"context"

	"github.com/jrsteele09/clientconnect/crm"
	"golang.org/x/sync/errgroup"
)

type ProjectsAPI interface {
	ListClients(ctx context.Context) ([]crm.Client, error)
	ListProjects(ctx context.Context) ([]crm.Project, error)
	ListPayments(ctx context.Context) ([]crm.Payment, error)
	CreateProject(ctx context.Context, in crm.ProjectInput) (*crm.Project, error)
}

type Projects struct {
	Page
	Clients  []crm.Client
	Projects []crm.Project
	Payments []crm.Payment
	Form     crm.ProjectInput

	api ProjectsAPI
}

func NewProjects(api ProjectsAPI, opts Options) *Projects {
	return &Projects{
		Page: newPage(opts),
		Form: crm.ProjectInput{}.Normalize(),
		api:  api,
	}
}

// Preselect fills the form's client, as when arriving from a client's page.
func (p *Projects) Preselect(clientID int64) {
	p.Form.ClientID = clientID
}

func (p *Projects) load(ctx context.Context) error {
	var (
		clients  []crm.Client
		projects []crm.Project
		payments []crm.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = p.api.ListClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = p.api.ListProjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		payments, err = p.api.ListPayments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if stale(ctx) {
		return ctx.Err()
	}

	p.Clients = clients
	p.Projects = newestProjectsFirst(projects)
	p.Payments = payments
	return nil
}

// Mount loads clients, projects and payments together.
func (p *Projects) Mount(ctx context.Context) error {
	if err := p.load(ctx); err != nil {
		if !stale(ctx) {
			p.fail(err, "Failed to load project data.")
		}
		return err
	}
	return nil
}

// Create adds a project then reloads the page data.
func (p *Projects) Create(ctx context.Context, in crm.ProjectInput) error {
	in = in.Normalize()
	p.Form = in
	if err := in.ValidateNew(); err != nil {
		p.fail(err, "Project creation failed.")
		return err
	}

	created, err := p.api.CreateProject(ctx, in)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		p.fail(err, "Project creation failed.")
		return err
	}

	p.Form = crm.ProjectInput{}.Normalize()
	if err := p.load(ctx); err != nil && !stale(ctx) {
		p.Projects = append([]crm.Project{*created}, p.Projects...)
	}
	p.succeed("Project created successfully.")
	return nil
}

// ClientName looks up a project's client in the loaded list.
func (p *Projects) ClientName(id int64) string {
	for _, c := range p.Clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown Client"
}

func (p *Projects) PaymentsFor(projectID int64) []crm.Payment {
	var out []crm.Payment
	for _, payment := range p.Payments {
		if payment.ProjectID == projectID {
			out = append(out, payment)
		}
	}
	return out
}

func (p *Projects) PaidTotal(projectID int64) float64 {
	return crm.TotalAmount(p.PaymentsFor(projectID))
}
