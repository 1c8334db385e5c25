package pages

import (
	"context"
	"strings"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type DashboardAPI interface {
	KPIs(ctx context.Context) (*crm.KPIs, error)
	Activities(ctx context.Context) ([]crm.Activity, error)
}

type Dashboard struct {
	Page
	KPIs       *crm.KPIs
	Activities []crm.Activity

	api DashboardAPI
}

func NewDashboard(api DashboardAPI, opts Options) *Dashboard {
	return &Dashboard{Page: newPage(opts), api: api}
}

// Mount loads the KPIs and the activity feed together. Either failing fails the page.
func (d *Dashboard) Mount(ctx context.Context) error {
	var (
		kpis       *crm.KPIs
		activities []crm.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		kpis, err = d.api.KPIs(gctx)
		return err
	})
	g.Go(func() (err error) {
		activities, err = d.api.Activities(gctx)
		return err
	})
	err := g.Wait()
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		log.Err(err).Msg("Failed to fetch dashboard data")
		d.Error = "Could not load dashboard data."
		return err
	}

	d.KPIs = kpis
	d.Activities = activities
	return nil
}

type KPICard struct {
	Title  string
	Link   string
	Value  string
	Change string
	Rising bool
}

// Cards lays the KPIs out in display order.
func (d *Dashboard) Cards() []KPICard {
	if d.KPIs == nil {
		return nil
	}
	card := func(title, link string, v crm.KPIValue, money bool) KPICard {
		value := FormatNumber(v.Value)
		if money {
			value = FormatMoney(v.Value)
		}
		return KPICard{
			Title:  title,
			Link:   link,
			Value:  value,
			Change: v.Change,
			Rising: strings.HasPrefix(v.Change, "+"),
		}
	}
	return []KPICard{
		card("Active Clients", "/clients", d.KPIs.ActiveClients, false),
		card("Projects in Progress", "/projects", d.KPIs.ProjectsInProgress, false),
		card("Revenue this Month", "/payments", d.KPIs.RevenueThisMonth, true),
		card("Pending Tasks", "/projects", d.KPIs.PendingTasks, false),
	}
}
