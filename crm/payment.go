package crm

import "math"

type Payment struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	ProjectID int64   `json:"project_id"`
	DatePaid  Time    `json:"date_paid"`
	Notes     string  `json:"notes,omitempty"`
}

type PaymentInput struct {
	Amount    float64 `json:"amount"`
	ProjectID int64   `json:"project_id"`
	DatePaid  string  `json:"date_paid"`
	Notes     string  `json:"notes,omitempty"`
}

func (in PaymentInput) Validate() error {
	if in.DatePaid == "" {
		return &RequiredError{Field: "Date paid", Message: "Please enter the date paid."}
	}
	if _, err := ParseTime(in.DatePaid); err != nil {
		return &RequiredError{Field: "Date paid", Message: "Please enter a valid date paid."}
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return &RequiredError{Field: "Amount", Message: "Please enter a valid amount."}
	}
	if in.Amount <= 0 {
		return &RequiredError{Field: "Amount", Message: "Please enter an amount greater than zero."}
	}
	return requiredID("Project", in.ProjectID)
}

// TotalAmount sums payment amounts.
func TotalAmount(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
