package pages

import (
	"context"
	"fmt"

	"github.com/jrsteele09/clientconnect/crm"
	"golang.org/x/sync/errgroup"
)

type PaymentsAPI interface {
	ListPayments(ctx context.Context) ([]crm.Payment, error)
	ListProjects(ctx context.Context) ([]crm.Project, error)
	CreatePayment(ctx context.Context, in crm.PaymentInput) (*crm.Payment, error)
}

type Payments struct {
	Page
	Payments []crm.Payment
	Projects []crm.Project
	Form     crm.PaymentInput

	api PaymentsAPI
}

func NewPayments(api PaymentsAPI, opts Options) *Payments {
	return &Payments{Page: newPage(opts), api: api}
}

// Mount loads payments and projects side by side. Each failure is reported on its own
// and does not hide what the other call returned.
func (p *Payments) Mount(ctx context.Context) error {
	var (
		payments    []crm.Payment
		projects    []crm.Project
		paymentsErr error
		projectsErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		payments, paymentsErr = p.api.ListPayments(ctx)
		return nil
	})
	g.Go(func() error {
		projects, projectsErr = p.api.ListProjects(ctx)
		return nil
	})
	_ = g.Wait()
	if stale(ctx) {
		return ctx.Err()
	}

	if projectsErr == nil {
		p.Projects = projects
	} else {
		p.fail(projectsErr, "Failed to fetch projects.")
	}
	if paymentsErr == nil {
		p.Payments = latestPaymentsFirst(payments)
	} else {
		p.fail(paymentsErr, "Failed to fetch payments.")
	}

	if paymentsErr != nil {
		return paymentsErr
	}
	return projectsErr
}

// Create records a payment and reloads the payment list.
func (p *Payments) Create(ctx context.Context, in crm.PaymentInput) error {
	p.Form = in
	if err := in.Validate(); err != nil {
		p.fail(err, "Failed to create payment.")
		return err
	}

	created, err := p.api.CreatePayment(ctx, in)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		p.fail(err, "Failed to create payment.")
		return err
	}

	p.Form = crm.PaymentInput{}
	payments, err := p.api.ListPayments(ctx)
	switch {
	case stale(ctx):
		return ctx.Err()
	case err != nil:
		p.Payments = latestPaymentsFirst(append(p.Payments, *created))
	default:
		p.Payments = latestPaymentsFirst(payments)
	}
	p.succeed("Payment added successfully!")
	return nil
}

func (p *Payments) TotalRevenue() float64 {
	return crm.TotalAmount(p.Payments)
}

func (p *Payments) ProjectName(id int64) string {
	for _, project := range p.Projects {
		if project.ID == id {
			return project.Name
		}
	}
	return fmt.Sprintf("Project #%d", id)
}
