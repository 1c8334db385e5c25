package pages

import (
	"context"
	"fmt"
	"slices"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/feedback"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ClientNotesAPI interface {
	GetClient(ctx context.Context, id int64) (*crm.Client, error)
	ClientNotes(ctx context.Context, id int64) ([]crm.Note, error)
	CreateNote(ctx context.Context, in crm.NoteInput) (*crm.Note, error)
	UpdateNote(ctx context.Context, id int64, in crm.NoteInput) (*crm.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type ClientNotes struct {
	Page
	ClientID   int64
	ClientName string
	Notes      []crm.Note
	Form       crm.NoteInput
	// EditingID is the note whose content the form is editing, 0 when adding.
	EditingID int64
	Confirm   feedback.Confirm

	api ClientNotesAPI
}

func NewClientNotes(api ClientNotesAPI, clientID int64, opts Options) *ClientNotes {
	return &ClientNotes{
		Page:     newPage(opts),
		ClientID: clientID,
		Confirm:  feedback.Confirm{Title: "Confirm Note Deletion"},
		api:      api,
	}
}

// Mount loads the client's name and its notes independently. A missing name
// falls back to the id; only a notes failure is reported.
func (n *ClientNotes) Mount(ctx context.Context) error {
	var (
		name     string
		notes    []crm.Note
		notesErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		client, err := n.api.GetClient(ctx, n.ClientID)
		if err != nil {
			log.Debug().Err(err).Int64("client_id", n.ClientID).Msg("Failed to get client name")
			name = fmt.Sprintf("Client #%d", n.ClientID)
			return nil
		}
		name = client.Name
		return nil
	})
	g.Go(func() error {
		notes, notesErr = n.api.ClientNotes(ctx, n.ClientID)
		return nil
	})
	_ = g.Wait()
	if stale(ctx) {
		return ctx.Err()
	}

	n.ClientName = name
	if notesErr != nil {
		n.fail(notesErr, "Failed to fetch notes.")
		return notesErr
	}
	n.Notes = newestNotesFirst(notes)
	return nil
}

func (n *ClientNotes) refreshNotes(ctx context.Context) bool {
	notes, err := n.api.ClientNotes(ctx, n.ClientID)
	if err != nil || stale(ctx) {
		log.Debug().Err(err).Msg("note refresh failed")
		return false
	}
	n.Notes = newestNotesFirst(notes)
	return true
}

func (n *ClientNotes) input(content string) crm.NoteInput {
	clientID := n.ClientID
	return crm.NoteInput{Content: content, ClientID: &clientID}
}

// Create adds a note to the client. On failure the list and the typed content are kept.
func (n *ClientNotes) Create(ctx context.Context, content string) error {
	in := n.input(content)
	n.Form = in
	if err := in.Validate(); err != nil {
		n.fail(err, "Error adding note.")
		return err
	}

	created, err := n.api.CreateNote(ctx, in)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		n.fail(err, "Error adding note.")
		return err
	}

	n.Form = crm.NoteInput{}
	if !n.refreshNotes(ctx) && !slices.ContainsFunc(n.Notes, func(note crm.Note) bool { return note.ID == created.ID }) {
		n.Notes = append([]crm.Note{*created}, n.Notes...)
	}
	n.succeed("Note added successfully!")
	return nil
}

// Edit loads a note's content into the form.
func (n *ClientNotes) Edit(id int64) error {
	i := slices.IndexFunc(n.Notes, func(note crm.Note) bool { return note.ID == id })
	if i < 0 {
		return apperrors.Wrapf(apperrors.ErrNotFound, "note %d", id)
	}
	n.EditingID = id
	n.Form = n.input(n.Notes[i].Content)
	return nil
}

func (n *ClientNotes) CancelEdit() {
	n.EditingID = 0
	n.Form = crm.NoteInput{}
}

func (n *ClientNotes) Update(ctx context.Context, id int64, content string) error {
	in := n.input(content)
	n.EditingID = id
	n.Form = in
	if err := in.Validate(); err != nil {
		n.fail(err, "Error updating note.")
		return err
	}

	updated, err := n.api.UpdateNote(ctx, id, in)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		n.fail(err, "Error updating note.")
		return err
	}

	n.CancelEdit()
	if !n.refreshNotes(ctx) {
		if i := slices.IndexFunc(n.Notes, func(note crm.Note) bool { return note.ID == id }); i >= 0 {
			n.Notes[i] = *updated
		}
	}
	n.succeed("Note updated successfully!")
	return nil
}

func (n *ClientNotes) RequestDelete(id int64) { n.Confirm.Request(id) }

func (n *ClientNotes) CancelDelete() { n.Confirm.Cancel() }

func (n *ClientNotes) ConfirmDelete(ctx context.Context) error {
	id, ok := n.Confirm.Take()
	if !ok {
		return apperrors.ErrNothingToDelete
	}

	err := n.api.DeleteNote(ctx, id)
	if stale(ctx) {
		return ctx.Err()
	}
	if err != nil {
		n.fail(err, "Error deleting note.")
		return err
	}

	n.Notes = slices.DeleteFunc(n.Notes, func(note crm.Note) bool { return note.ID == id })
	n.succeed("Note deleted successfully!")
	return nil
}
