package crm

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "Pending"
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
)

var ProjectStatuses = []ProjectStatus{ProjectPending, ProjectActive, ProjectCompleted}

func (s ProjectStatus) Valid() bool {
	for _, status := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	ClientID    int64         `json:"client_id"`
	CreatedAt   Time          `json:"created_at"`
	UpdatedAt   Time          `json:"updated_at"`
}

type ProjectInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	ClientID    int64         `json:"client_id,omitempty"`
}

// Normalize fills in the default status.
func (in ProjectInput) Normalize() ProjectInput {
	if in.Status == "" {
		in.Status = ProjectPending
	}
	return in
}

func (in ProjectInput) Validate() error {
	if err := required("Name", in.Name); err != nil {
		return err
	}
	if !in.Normalize().Status.Valid() {
		return &RequiredError{Field: "Status", Message: "Status must be Pending, Active or Completed."}
	}
	return nil
}

// ValidateNew also requires the owning client, which updates leave unchanged.
func (in ProjectInput) ValidateNew() error {
	if err := in.Validate(); err != nil {
		return err
	}
	return requiredID("Client", in.ClientID)
}
