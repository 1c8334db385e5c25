package pages

import (
	"context"
	"strings"

	"github.com/jrsteele09/clientconnect/crm"
)

type SettingsAPI interface {
	Me(ctx context.Context) (*crm.User, error)
	UpdateMe(ctx context.Context, update crm.ProfileUpdate) (*crm.User, error)
}

type Settings struct {
	Page
	Email string
	Form  crm.ProfileUpdate

	api SettingsAPI
}

func NewSettings(api SettingsAPI, opts Options) *Settings {
	return &Settings{Page: newPage(opts), api: api}
}

func (s *Settings) Mount(ctx context.Context) error {
	me, err := s.api.Me(ctx)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.fail(err, "Failed to load your information.")
		return err
	}
	s.Email = me.Email
	s.Form = crm.ProfileUpdate{Name: me.Name}
	return nil
}

// Update saves the profile name and returns the user as the API now knows it.
func (s *Settings) Update(ctx context.Context, name string) (*crm.User, error) {
	s.Form = crm.ProfileUpdate{Name: strings.TrimSpace(name)}

	updated, err := s.api.UpdateMe(ctx, s.Form)
	if stale(ctx) {
		return nil, ctx.Err()
	}
	if err != nil {
		s.fail(err, "Failed to update settings.")
		return nil, err
	}

	if updated.Email == "" {
		updated.Email = s.Email
	}
	s.Email = updated.Email
	s.Form = crm.ProfileUpdate{Name: updated.Name}
	s.succeed("Settings updated successfully!")
	return updated, nil
}
