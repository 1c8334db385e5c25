package server_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/stretchr/testify/require"
)

const resetToken = "rt-1"

// seedRecords adds notes, projects, payments and the account endpoints to the fake API.
func (f *fakeCRM) seedRecords() {
	acme := int64(7)
	created := crm.Time{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	f.notes = []crm.Note{{ID: 5, Content: "Kickoff call went well", ClientID: &acme, CreatedAt: created}}
	f.projects = []crm.Project{{ID: 3, Name: "Website Redesign", Description: "New marketing site", Status: crm.ProjectActive, ClientID: 7, CreatedAt: created}}
	f.payments = []crm.Payment{{ID: 11, Amount: 1200, ProjectID: 3, DatePaid: crm.Time{Time: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}, Notes: "Deposit"}}

	f.mux.HandleFunc("GET /api/clients/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, c := range f.clients {
			if c["id"] == id {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Client not found"})
	}))
	f.mux.HandleFunc("GET /api/clients/{id}/projects", f.authed(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []crm.Project{}
		for _, p := range f.projects {
			if p.ClientID == id {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))
	f.mux.HandleFunc("GET /api/clients/{id}/notes", f.authed(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []crm.Note{}
		for _, n := range f.notes {
			if n.ClientID != nil && *n.ClientID == id {
				out = append(out, n)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))

	f.mux.HandleFunc("POST /api/notes", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in crm.NoteInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		note := crm.Note{ID: f.newID(), Content: in.Content, ClientID: in.ClientID, CreatedAt: crm.Time{Time: time.Now().UTC()}}
		f.notes = append(f.notes, note)
		writeJSON(w, http.StatusCreated, note)
	}))
	f.mux.HandleFunc("PUT /api/notes/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in crm.NoteInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.notes {
			if f.notes[i].ID == id {
				f.notes[i].Content = in.Content
				writeJSON(w, http.StatusOK, f.notes[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Note not found"})
	}))
	f.mux.HandleFunc("DELETE /api/notes/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, "note/"+r.PathValue("id"))
		kept := f.notes[:0]
		for _, n := range f.notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		f.notes = kept
		w.WriteHeader(http.StatusNoContent)
	}))

	f.mux.HandleFunc("GET /api/projects", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.projects)
	}))
	f.mux.HandleFunc("POST /api/projects", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in crm.ProjectInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		project := crm.Project{ID: f.newID(), Name: in.Name, Description: in.Description, Status: in.Status, ClientID: in.ClientID}
		f.projects = append(f.projects, project)
		writeJSON(w, http.StatusCreated, project)
	}))
	f.mux.HandleFunc("GET /api/projects/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range f.projects {
			if p.ID == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Project not found"})
	}))
	f.mux.HandleFunc("PUT /api/projects/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in crm.ProjectInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.projects {
			if f.projects[i].ID == id {
				f.projects[i].Name = in.Name
				f.projects[i].Description = in.Description
				f.projects[i].Status = in.Status
				writeJSON(w, http.StatusOK, f.projects[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Project not found"})
	}))
	f.mux.HandleFunc("DELETE /api/projects/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, "project/"+r.PathValue("id"))
		kept := f.projects[:0]
		for _, p := range f.projects {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		f.projects = kept
		w.WriteHeader(http.StatusNoContent)
	}))

	f.mux.HandleFunc("GET /api/payments", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.payments)
	}))
	f.mux.HandleFunc("POST /api/payments", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in crm.PaymentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		paid, err := crm.ParseTime(in.DatePaid)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid date_paid"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		payment := crm.Payment{ID: f.newID(), Amount: in.Amount, ProjectID: in.ProjectID, DatePaid: paid, Notes: in.Notes}
		f.payments = append(f.payments, payment)
		writeJSON(w, http.StatusCreated, payment)
	}))

	f.mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var in crm.Credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Email == "taken@b.com" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"msg": "User registered"})
	})
	f.mux.HandleFunc("POST /api/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"msg": "Reset link sent", "reset_token": resetToken})
	})
	f.mux.HandleFunc("POST /api/reset-password", func(w http.ResponseWriter, r *http.Request) {
		var in crm.PasswordReset
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Token != resetToken {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Invalid or expired token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"msg": "Password updated"})
	})
}

// newID must be called with mu held.
func (f *fakeCRM) newID() int64 {
	f.nextID++
	return f.nextID
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func TestClientDetails_ShowsProjectsAndNotes(t *testing.T) {
	b, _ := setup(t)
	b.login()

	res := b.get("/clients/7")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "ops@acme.test")
	require.Contains(t, res.body, "Website Redesign")
	require.Contains(t, res.body, "Kickoff call went well")
	require.Contains(t, res.body, `href="/projects?clientId=7"`)

	res = b.get("/clients/999")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Failed to fetch client data. Please try again.")
	require.NotContains(t, res.body, "Manage Notes", "nothing is shown unless every part loaded")
}

func TestClientNotes_CreateAndEdit(t *testing.T) {
	b, _ := setup(t)
	b.login()

	res := b.get("/clients/7/notes")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Notes for Acme")
	require.Contains(t, res.body, "Kickoff call went well")

	res = b.post("/clients/7/notes", url.Values{"content": {"  "}})
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Content is required.")

	res = b.post("/clients/7/notes", url.Values{"content": {"Sent proposal"}})
	require.Equal(t, http.StatusSeeOther, res.status)
	require.Equal(t, "/clients/7/notes", res.location)
	res = b.get("/clients/7/notes")
	require.Contains(t, res.body, "Note added successfully!")
	require.Contains(t, res.body, "Sent proposal")

	res = b.get("/clients/7/notes?edit=5")
	require.Contains(t, res.body, `action="/notes/5"`)
	require.Contains(t, res.body, `name="client_id" value="7"`)
	require.Contains(t, res.body, "Kickoff call went well</textarea>")

	res = b.post("/notes/5", url.Values{"client_id": {"7"}, "content": {"Kickoff moved to Friday"}})
	require.Equal(t, "/clients/7/notes", res.location)
	res = b.get("/clients/7/notes")
	require.Contains(t, res.body, "Note updated successfully!")
	require.Contains(t, res.body, "Kickoff moved to Friday")

	res = b.post("/notes/5", url.Values{"content": {"no owner"}})
	require.Equal(t, "/clients", res.location, "the owning client is required")
}

func TestClientNotes_DeleteNeedsConfirmation(t *testing.T) {
	b, fake := setup(t)
	b.login()

	res := b.get("/clients/7/notes?delete=5")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Confirm Note Deletion")
	require.Contains(t, res.body, `action="/notes/5/delete"`)

	res = b.post("/notes/5/delete", url.Values{"client_id": {"7"}, "confirm": {"no"}})
	require.Equal(t, "/clients/7/notes", res.location)
	require.Empty(t, fake.deletedIDs())

	res = b.post("/notes/5/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, "/clients", res.location)
	require.Empty(t, fake.deletedIDs())

	res = b.post("/notes/5/delete", url.Values{"client_id": {"7"}, "confirm": {"yes"}})
	require.Equal(t, "/clients/7/notes", res.location)
	require.Equal(t, []string{"note/5"}, fake.deletedIDs())

	res = b.get("/clients/7/notes")
	require.Contains(t, res.body, "Note deleted successfully!")
	require.Contains(t, res.body, "No notes yet.")
}

func TestProjects_CreateWithPreselectedClient(t *testing.T) {
	b, _ := setup(t)
	b.login()

	res := b.get("/projects?clientId=7")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, `<option value="7" selected>Acme</option>`)
	require.Contains(t, res.body, "Website Redesign")
	require.Contains(t, res.body, "Total paid: $1,200")

	res = b.post("/projects", url.Values{"name": {""}, "client_id": {"7"}})
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Name is required.")

	res = b.post("/projects", url.Values{"name": {"Mobile App"}, "status": {"Pending"}, "client_id": {"8"}})
	require.Equal(t, "/projects", res.location)
	res = b.get("/projects")
	require.Contains(t, res.body, "Project created successfully.")
	require.Contains(t, res.body, "Mobile App")
	require.Contains(t, res.body, "Globex")
}

func TestProjectDetail_EditAndDeleteConfirmation(t *testing.T) {
	b, fake := setup(t)
	b.login()

	res := b.get("/projects/3")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "New marketing site")

	res = b.get("/projects/3?edit=1")
	require.Contains(t, res.body, `action="/projects/3"`)
	require.Contains(t, res.body, `value="Website Redesign"`)

	res = b.post("/projects/3", url.Values{"name": {"Website Relaunch"}, "status": {"Completed"}, "client_id": {"7"}})
	require.Equal(t, "/projects/3", res.location)
	res = b.get("/projects/3")
	require.Contains(t, res.body, "Project updated successfully.")
	require.Contains(t, res.body, "Website Relaunch")

	res = b.get("/projects/3?delete=1")
	require.Contains(t, res.body, "Confirm Project Deletion")
	require.Contains(t, res.body, `action="/projects/3/delete"`)

	res = b.post("/projects/3/delete", url.Values{"confirm": {"no"}})
	require.Equal(t, "/projects/3", res.location)
	require.Empty(t, fake.deletedIDs())

	res = b.post("/projects/3/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, "/projects", res.location)
	require.Equal(t, []string{"project/3"}, fake.deletedIDs())

	res = b.get("/projects")
	require.Contains(t, res.body, "Project deleted successfully.")
	require.NotContains(t, res.body, "Website Relaunch")

	res = b.get("/projects/3")
	require.Contains(t, res.body, "Project not found")
}

func TestPayments_RecordAndValidate(t *testing.T) {
	b, _ := setup(t)
	b.login()

	res := b.get("/payments")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, `data-testid="total-revenue">$1,200<`)
	require.Contains(t, res.body, "Deposit")

	form := url.Values{"amount": {"250"}, "project_id": {"3"}, "date_paid": {""}, "notes": {"Final invoice"}}
	res = b.post("/payments", form)
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Please enter the date paid.")
	require.Contains(t, res.body, `value="250"`, "form is kept on failure")
	require.Contains(t, res.body, `value="Final invoice"`)

	form.Set("date_paid", "2024-04-01")
	form.Set("amount", "Inf")
	res = b.post("/payments", form)
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, "Please enter a valid amount.")

	form.Set("amount", "250")
	res = b.post("/payments", form)
	require.Equal(t, "/payments", res.location)
	res = b.get("/payments")
	require.Contains(t, res.body, "Payment added successfully!")
	require.Contains(t, res.body, `data-testid="total-revenue">$1,450<`)
}

func TestAccountPages(t *testing.T) {
	b, _ := setup(t)

	res := b.get("/register")
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, res.body, `action="/register"`)

	res = b.post("/register", url.Values{"email": {"new@b.com"}, "password": {"pw"}, "confirm_password": {"other"}})
	require.Contains(t, res.body, "Passwords do not match")

	res = b.post("/register", url.Values{"email": {"taken@b.com"}, "password": {"pw"}, "confirm_password": {"pw"}})
	require.Contains(t, res.body, "Email already registered")
	require.Contains(t, res.body, `value="taken@b.com"`)

	res = b.post("/register", url.Values{"email": {"new@b.com"}, "password": {"pw"}, "confirm_password": {"pw"}})
	require.Equal(t, "/login", res.location)
	res = b.get("/login")
	require.Contains(t, res.body, "Registration successful! Please login.")

	res = b.get("/forgot-password")
	require.Equal(t, http.StatusOK, res.status)
	res = b.post("/forgot-password", url.Values{"email": {"a@b.com"}})
	require.Contains(t, res.body, "Reset link sent")
	require.Contains(t, res.body, `href="/reset-password?token=`+resetToken+`"`)

	res = b.get("/reset-password?token=" + resetToken)
	require.Contains(t, res.body, `name="token" value="`+resetToken+`"`)

	res = b.post("/reset-password", url.Values{"token": {"stale"}, "password": {"n"}, "confirm_password": {"n"}})
	require.Contains(t, res.body, "Invalid or expired token")

	res = b.post("/reset-password", url.Values{"token": {resetToken}, "password": {"n"}, "confirm_password": {"n"}})
	require.Contains(t, res.body, "Password updated")
}
