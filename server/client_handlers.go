package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/internal/utils"
	"github.com/jrsteele09/clientconnect/pages"
	"github.com/rs/zerolog/log"
)

const confirmField = "confirm"

// confirmed reports whether a delete modal was submitted with its confirm button.
func confirmed(r *http.Request) bool {
	return r.FormValue(confirmField) == "yes"
}

// ClientsHandler lists, searches and adds clients (GET, POST /clients). Under
// /clients/{id}/delete it renders the list with the delete confirmation open.
func (s *Server) ClientsHandler() (http.HandlerFunc, error) {
	clientsTmpl, err := ParseTemplate("clients.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := pages.NewClients(s.crm, s.pageOptions())
		page.Search = strings.TrimSpace(r.URL.Query().Get("q"))
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		if r.Method == http.MethodPost {
			err := page.Create(ctx, crm.ClientInput{
				Name:    strings.TrimSpace(r.FormValue("name")),
				Email:   strings.TrimSpace(r.FormValue("email")),
				Phone:   strings.TrimSpace(r.FormValue("phone")),
				Company: strings.TrimSpace(r.FormValue("company")),
			})
			if s.sessionExpired(w, r, err) {
				return
			}
			if err == nil {
				s.finish(w, r, page, RouteClients)
				return
			}
		}

		if id := r.PathValue("id"); id != "" {
			clientID, err := utils.ParseID(id)
			if err != nil {
				redirectSuccess(w, r, RouteClients)
				return
			}
			page.RequestDelete(clientID)
		}
		s.render(w, r, clientsTmpl, "Clients", "clients", page)
	}, nil
}

// DeleteClientHandler answers the client delete confirmation (POST /clients/{id}/delete)
func (s *Server) DeleteClientHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := utils.ParseID(r.PathValue("id"))
		if err != nil {
			redirectSuccess(w, r, RouteClients)
			return
		}

		page := pages.NewClients(s.crm, s.pageOptions())
		page.RequestDelete(clientID)
		if !confirmed(r) {
			page.CancelDelete()
			redirectSuccess(w, r, RouteClients)
			return
		}
		err = page.ConfirmDelete(r.Context())
		if s.sessionExpired(w, r, err) {
			return
		}
		if err != nil {
			log.Err(err).Int64("client_id", clientID).Msg("failed to delete client")
		}
		s.finish(w, r, page, RouteClients)
	}
}

// ClientDetailsHandler shows a client with its projects and notes (GET /clients/{id})
func (s *Server) ClientDetailsHandler() (http.HandlerFunc, error) {
	detailsTmpl, err := ParseTemplate("client_details.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := utils.ParseID(r.PathValue("id"))
		if err != nil {
			redirectSuccess(w, r, RouteClients)
			return
		}

		page := pages.NewClientDetails(s.crm, clientID, s.pageOptions())
		if err := page.Mount(r.Context()); s.sessionExpired(w, r, err) {
			return
		}
		s.render(w, r, detailsTmpl, "Client Details", "clients", page)
	}, nil
}

// ClientNotesHandler lists and adds a client's notes (GET, POST /clients/{id}/notes).
// ?edit={noteID} opens a note in the form and ?delete={noteID} opens the delete confirmation.
func (s *Server) ClientNotesHandler() (http.HandlerFunc, error) {
	notesTmpl, err := ParseTemplate("client_notes.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientID, err := utils.ParseID(r.PathValue("id"))
		if err != nil {
			redirectSuccess(w, r, RouteClients)
			return
		}

		page := pages.NewClientNotes(s.crm, clientID, s.pageOptions())
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		if r.Method == http.MethodPost {
			err := page.Create(ctx, strings.TrimSpace(r.FormValue("content")))
			if s.sessionExpired(w, r, err) {
				return
			}
			if err == nil {
				s.finish(w, r, page, clientNotesPath(clientID))
				return
			}
		} else {
			query := r.URL.Query()
			if noteID := utils.OptionalID(query.Get("edit")); noteID != nil {
				if err := page.Edit(*noteID); err != nil {
					log.Debug().Err(err).Msg("note to edit is not in the list")
				}
			}
			if noteID := utils.OptionalID(query.Get("delete")); noteID != nil {
				page.RequestDelete(*noteID)
			}
		}
		s.render(w, r, notesTmpl, "Client Notes", "clients", page)
	}, nil
}

// UpdateNoteHandler saves an edited note (POST /notes/{id}). The owning client
// arrives in the client_id form field.
func (s *Server) UpdateNoteHandler() (http.HandlerFunc, error) {
	notesTmpl, err := ParseTemplate("client_notes.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		noteID, noteErr := utils.ParseID(r.PathValue("id"))
		clientID, clientErr := utils.ParseID(r.FormValue("client_id"))
		if noteErr != nil || clientErr != nil {
			redirectSuccess(w, r, RouteClients)
			return
		}

		page := pages.NewClientNotes(s.crm, clientID, s.pageOptions())
		if err := page.Mount(ctx); s.sessionExpired(w, r, err) {
			return
		}

		err := page.Update(ctx, noteID, strings.TrimSpace(r.FormValue("content")))
		if s.sessionExpired(w, r, err) {
			return
		}
		if err == nil {
			s.finish(w, r, page, clientNotesPath(clientID))
			return
		}
		s.render(w, r, notesTmpl, "Client Notes", "clients", page)
	}, nil
}

// DeleteNoteHandler answers the note delete confirmation (POST /notes/{id}/delete)
func (s *Server) DeleteNoteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noteID, noteErr := utils.ParseID(r.PathValue("id"))
		clientID, clientErr := utils.ParseID(r.FormValue("client_id"))
		if clientErr != nil {
			redirectSuccess(w, r, RouteClients)
			return
		}
		if noteErr != nil {
			redirectSuccess(w, r, clientNotesPath(clientID))
			return
		}

		page := pages.NewClientNotes(s.crm, clientID, s.pageOptions())
		page.RequestDelete(noteID)
		if !confirmed(r) {
			page.CancelDelete()
			redirectSuccess(w, r, clientNotesPath(clientID))
			return
		}
		err := page.ConfirmDelete(r.Context())
		if s.sessionExpired(w, r, err) {
			return
		}
		if err != nil {
			log.Err(err).Int64("note_id", noteID).Msg("failed to delete note")
		}
		s.finish(w, r, page, clientNotesPath(clientID))
	}
}
