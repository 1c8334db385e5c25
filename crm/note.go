package crm

type Note struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	ClientID  *int64 `json:"client_id,omitempty"`
	ProjectID *int64 `json:"project_id,omitempty"`
	CreatedAt Time   `json:"created_at"`
	UpdatedAt Time   `json:"updated_at"`
}

type NoteInput struct {
	Content   string `json:"content"`
	ClientID  *int64 `json:"client_id,omitempty"`
	ProjectID *int64 `json:"project_id,omitempty"`
}

func (in NoteInput) Validate() error {
	return required("Content", in.Content)
}
