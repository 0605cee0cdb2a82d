package reimbursement

import "time"

type CreateReimbursementRequest struct {
	Title       string  `form:"title" binding:"required,max=150"`
	Category    string  `form:"category" binding:"omitempty,max=100"`
	Amount      float64 `form:"amount" binding:"required,gt=0"`
	Description string  `form:"description"`
	ExpenseDate string  `form:"expense_date" binding:"required"`
}

type RejectReimbursementRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

type ClearReimbursementRequest struct {
	Note string `json:"note"`
}

type ReimbursementResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Amount       float64    `json:"amount"`
	Description  string     `json:"description"`
	ExpenseDate  string     `json:"expense_date"`
	BillURL      *string    `json:"bill_url,omitempty"`
	Status       string     `json:"status"`
	AdminRemarks *string    `json:"admin_remarks,omitempty"`
	ProcessedBy  *string    `json:"processed_by,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	ClearedAt    *time.Time `json:"cleared_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
