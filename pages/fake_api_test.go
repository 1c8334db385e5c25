package pages_test

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/clientconnect/crm"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
)

// fakeAPI is an in-memory CRM API. errs forces a method to fail by name.
type fakeAPI struct {
	mu sync.Mutex

	clients    []crm.Client
	projects   []crm.Project
	payments   []crm.Payment
	notes      []crm.Note
	kpis       *crm.KPIs
	activities []crm.Activity
	me         crm.User
	token      crm.TokenResponse

	errs   map[string]error
	calls  []string
	nextID int64
	// onCall runs after a call is recorded, before it is answered.
	onCall func(method string)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{errs: map[string]error{}, nextID: 100}
}

func (f *fakeAPI) call(method string) error {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	err := f.errs[method]
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook(method)
	}
	return err
}

func (f *fakeAPI) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeAPI) id() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) KPIs(ctx context.Context) (*crm.KPIs, error) {
	if err := f.call("KPIs"); err != nil {
		return nil, err
	}
	return f.kpis, nil
}

func (f *fakeAPI) Activities(ctx context.Context) ([]crm.Activity, error) {
	if err := f.call("Activities"); err != nil {
		return nil, err
	}
	return f.activities, nil
}

func (f *fakeAPI) ListClients(ctx context.Context) ([]crm.Client, error) {
	if err := f.call("ListClients"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]crm.Client(nil), f.clients...), nil
}

func (f *fakeAPI) CreateClient(ctx context.Context, in crm.ClientInput) (*crm.Client, error) {
	if err := f.call("CreateClient"); err != nil {
		return nil, err
	}
	c := crm.Client{ID: f.id(), Name: in.Name, Email: in.Email, Phone: in.Phone, Company: in.Company}
	f.mu.Lock()
	f.clients = append(f.clients, c)
	f.mu.Unlock()
	return &c, nil
}

func (f *fakeAPI) GetClient(ctx context.Context, id int64) (*crm.Client, error) {
	if err := f.call("GetClient"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAPI) DeleteClient(ctx context.Context, id int64) error {
	return f.call("DeleteClient")
}

func (f *fakeAPI) ClientProjects(ctx context.Context, id int64) ([]crm.Project, error) {
	if err := f.call("ClientProjects"); err != nil {
		return nil, err
	}
	var out []crm.Project
	for _, p := range f.projects {
		if p.ClientID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAPI) ClientNotes(ctx context.Context, id int64) ([]crm.Note, error) {
	if err := f.call("ClientNotes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []crm.Note
	for _, n := range f.notes {
		if n.ClientID != nil && *n.ClientID == id {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, in crm.NoteInput) (*crm.Note, error) {
	if err := f.call("CreateNote"); err != nil {
		return nil, err
	}
	n := crm.Note{ID: f.id(), Content: in.Content, ClientID: in.ClientID, CreatedAt: crm.Time{Time: time.Now().UTC()}}
	f.mu.Lock()
	f.notes = append(f.notes, n)
	f.mu.Unlock()
	return &n, nil
}

func (f *fakeAPI) UpdateNote(ctx context.Context, id int64, in crm.NoteInput) (*crm.Note, error) {
	if err := f.call("UpdateNote"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Content = in.Content
			n := f.notes[i]
			return &n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAPI) DeleteNote(ctx context.Context, id int64) error {
	return f.call("DeleteNote")
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]crm.Project, error) {
	if err := f.call("ListProjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]crm.Project(nil), f.projects...), nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, in crm.ProjectInput) (*crm.Project, error) {
	if err := f.call("CreateProject"); err != nil {
		return nil, err
	}
	p := crm.Project{ID: f.id(), Name: in.Name, Description: in.Description, Status: in.Status, ClientID: in.ClientID, CreatedAt: crm.Time{Time: time.Now().UTC()}}
	f.mu.Lock()
	f.projects = append(f.projects, p)
	f.mu.Unlock()
	return &p, nil
}

func (f *fakeAPI) GetProject(ctx context.Context, id int64) (*crm.Project, error) {
	if err := f.call("GetProject"); err != nil {
		return nil, err
	}
	for _, p := range f.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAPI) UpdateProject(ctx context.Context, id int64, in crm.ProjectInput) (*crm.Project, error) {
	if err := f.call("UpdateProject"); err != nil {
		return nil, err
	}
	p := crm.Project{ID: id, Name: in.Name, Description: in.Description, Status: in.Status, ClientID: in.ClientID}
	return &p, nil
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id int64) error {
	return f.call("DeleteProject")
}

func (f *fakeAPI) ListPayments(ctx context.Context) ([]crm.Payment, error) {
	if err := f.call("ListPayments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]crm.Payment(nil), f.payments...), nil
}

func (f *fakeAPI) CreatePayment(ctx context.Context, in crm.PaymentInput) (*crm.Payment, error) {
	if err := f.call("CreatePayment"); err != nil {
		return nil, err
	}
	paid, _ := crm.ParseTime(in.DatePaid)
	p := crm.Payment{ID: f.id(), Amount: in.Amount, ProjectID: in.ProjectID, DatePaid: paid, Notes: in.Notes}
	f.mu.Lock()
	f.payments = append(f.payments, p)
	f.mu.Unlock()
	return &p, nil
}

func (f *fakeAPI) Me(ctx context.Context) (*crm.User, error) {
	if err := f.call("Me"); err != nil {
		return nil, err
	}
	u := f.me
	return &u, nil
}

func (f *fakeAPI) UpdateMe(ctx context.Context, update crm.ProfileUpdate) (*crm.User, error) {
	if err := f.call("UpdateMe"); err != nil {
		return nil, err
	}
	f.me.Name = update.Name
	u := f.me
	return &u, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*crm.TokenResponse, error) {
	if err := f.call("Login"); err != nil {
		return nil, err
	}
	t := f.token
	return &t, nil
}

func (f *fakeAPI) Register(ctx context.Context, creds crm.Credentials) (*crm.MessageResponse, error) {
	if err := f.call("Register"); err != nil {
		return nil, err
	}
	return &crm.MessageResponse{Msg: "User created successfully"}, nil
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, email string) (*crm.MessageResponse, error) {
	if err := f.call("ForgotPassword"); err != nil {
		return nil, err
	}
	return &crm.MessageResponse{Msg: "Password reset email sent", ResetToken: "reset-tok"}, nil
}

func (f *fakeAPI) ResetPassword(ctx context.Context, reset crm.PasswordReset) (*crm.MessageResponse, error) {
	if err := f.call("ResetPassword"); err != nil {
		return nil, err
	}
	return &crm.MessageResponse{}, nil
}
