package pages

import (
	"context"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/feedback"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
)

type ProjectDetailAPI interface {
	GetProject(ctx context.Context, id int64) (*crm.Project, error)
	UpdateProject(ctx context.Context, id int64, in crm.ProjectInput) (*crm.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

type ProjectDetail struct {
	Page
	ProjectID int64
	Project   *crm.Project
	Form      crm.ProjectInput
	Editing   bool
	Confirm   feedback.Confirm

	api ProjectDetailAPI
}

func NewProjectDetail(api ProjectDetailAPI, projectID int64, opts Options) *ProjectDetail {
	return &ProjectDetail{
		Page:      newPage(opts),
		ProjectID: projectID,
		Confirm:   feedback.Confirm{Title: "Confirm Project Deletion"},
		api:       api,
	}
}

func (d *ProjectDetail) Mount(ctx context.Context) error {
	project, err := d.api.GetProject(ctx, d.ProjectID)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		d.fail(err, "Failed to fetch project details.")
		return err
	}
	d.Project = project
	d.Form = formFromProject(*project)
	return nil
}

func formFromProject(p crm.Project) crm.ProjectInput {
	return crm.ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		ClientID:    p.ClientID,
	}.Normalize()
}

func (d *ProjectDetail) StartEdit() {
	if d.Project != nil {
		d.Form = formFromProject(*d.Project)
	}
	d.Editing = true
}

func (d *ProjectDetail) CancelEdit() {
	d.Editing = false
	if d.Project != nil {
		d.Form = formFromProject(*d.Project)
	}
}

// Update saves the edit form. The form stays open with its input on failure.
func (d *ProjectDetail) Update(ctx context.Context, in crm.ProjectInput) error {
	in = in.Normalize()
	if in.ClientID == 0 && d.Project != nil {
		in.ClientID = d.Project.ClientID
	}
	d.Form = in
	d.Editing = true
	if err := in.Validate(); err != nil {
		d.fail(err, "Update failed.")
		return err
	}

	updated, err := d.api.UpdateProject(ctx, d.ProjectID, in)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		d.fail(err, "Update failed.")
		return err
	}

	d.Project = updated
	d.Form = formFromProject(*updated)
	d.Editing = false
	d.succeed("Project updated successfully.")
	return nil
}

func (d *ProjectDetail) RequestDelete() { d.Confirm.Request(d.ProjectID) }

func (d *ProjectDetail) CancelDelete() { d.Confirm.Cancel() }

// ConfirmDelete deletes the project and sends the browser back to the project list.
func (d *ProjectDetail) ConfirmDelete(ctx context.Context) error {
	id, ok := d.Confirm.Take()
	if !ok {
		return apperrors.ErrNothingToDelete
	}

	err := d.api.DeleteProject(ctx, id)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		d.fail(err, "Failed to delete project.")
		return err
	}

	d.succeed("Project deleted successfully.")
	d.RedirectTo = "/projects"
	return nil
}
