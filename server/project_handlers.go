package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/internal/utils"
	"github.com/jrsteele09/clientconnect/pages"
	"github.com/rs/zerolog/log"
)

func projectInput(r *http.Request) crm.ProjectInput {
	return crm.ProjectInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Status:      crm.ProjectStatus(r.FormValue("status")),
		ClientID:    utils.Value(utils.OptionalID(r.FormValue("client_id"))),
	}
}

// ProjectsHandler lists projects with their payments and creates new ones (GET, POST /projects).
// ?clientId= preselects the client in the form.
func (s *Server) ProjectsHandler() (http.HandlerFunc, error) {
	projectsTmpl, err := ParseTemplate("projects.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := pages.NewProjects(s.crm, s.pageOptions())
		if clientID := utils.OptionalID(r.URL.Query().Get("clientId")); clientID != nil {
			page.Preselect(*clientID)
		}
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		if r.Method == http.MethodPost {
			err := page.Create(ctx, projectInput(r))
			if s.sessionExpired(w, r, err) {
				return
			}
			if err == nil {
				s.finish(w, r, page, RouteProjects)
				return
			}
		}
		s.render(w, r, projectsTmpl, "Projects", "projects", page)
	}, nil
}

// ProjectDetailHandler shows and edits one project (GET, POST /projects/{id}).
// ?edit=1 opens the edit form and ?delete=1 the delete confirmation.
func (s *Server) ProjectDetailHandler() (http.HandlerFunc, error) {
	detailTmpl, err := ParseTemplate("project_detail.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		projectID, err := utils.ParseID(r.PathValue("id"))
		if err != nil {
			redirectSuccess(w, r, RouteProjects)
			return
		}

		page := pages.NewProjectDetail(s.crm, projectID, s.pageOptions())
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		if r.Method == http.MethodPost {
			err := page.Update(ctx, projectInput(r))
			if s.sessionExpired(w, r, err) {
				return
			}
			if err == nil {
				s.finish(w, r, page, projectPath(projectID))
				return
			}
		} else if page.Project != nil {
			query := r.URL.Query()
			if query.Get("edit") == "1" {
				page.StartEdit()
			}
			if query.Get("delete") == "1" {
				page.RequestDelete()
			}
		}
		s.render(w, r, detailTmpl, "Project Details", "projects", page)
	}, nil
}

// DeleteProjectHandler answers the project delete confirmation (POST /projects/{id}/delete)
func (s *Server) DeleteProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := utils.ParseID(r.PathValue("id"))
		if err != nil {
			redirectSuccess(w, r, RouteProjects)
			return
		}
		page := pages.NewProjectDetail(s.crm, projectID, s.pageOptions())
		page.RequestDelete()
		if !confirmed(r) {
			page.CancelDelete()
			redirectSuccess(w, r, projectPath(projectID))
			return
		}
		err = page.ConfirmDelete(r.Context())
		if s.sessionExpired(w, r, err) {
			return
		}
		if err != nil {
			log.Err(err).Int64("project_id", projectID).Msg("failed to delete project")
			s.finish(w, r, page, projectPath(projectID))
			return
		}
		s.finish(w, r, page, page.RedirectTo)
	}
}

// PaymentsHandler lists payments with the revenue total and records new ones (GET, POST /payments)
func (s *Server) PaymentsHandler() (http.HandlerFunc, error) {
	paymentsTmpl, err := ParseTemplate("payments.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := pages.NewPayments(s.crm, s.pageOptions())
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		if r.Method == http.MethodPost {
			// An unparsable amount is left at zero and rejected by validation.
			amount, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
			err := page.Create(ctx, crm.PaymentInput{
				Amount:    amount,
				ProjectID: utils.Value(utils.OptionalID(r.FormValue("project_id"))),
				DatePaid:  strings.TrimSpace(r.FormValue("date_paid")),
				Notes:     strings.TrimSpace(r.FormValue("notes")),
			})
			if s.sessionExpired(w, r, err) {
				return
			}
			if err == nil {
				s.finish(w, r, page, RoutePayments)
				return
			}
		}
		s.render(w, r, paymentsTmpl, "Payments", "payments", page)
	}, nil
}
