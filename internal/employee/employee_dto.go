package employee

type CreateEmployeeRequest struct {
	FullName      string   `json:"full_name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Department    string   `json:"department"`
	Designation   string   `json:"designation"`
	MonthlySalary *float64 `json:"monthly_salary"`
}

type UpdateEmployeeRequest struct {
	FullName      string   `json:"full_name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Department    string   `json:"department"`
	Designation   string   `json:"designation"`
	MonthlySalary *float64 `json:"monthly_salary"`
}

type EmployeeResponse struct {
	ID            string   `json:"id"`
	FullName      string   `json:"full_name"`
	Email         string   `json:"email"`
	Department    string   `json:"department"`
	Designation   string   `json:"designation"`
	MonthlySalary *float64 `json:"monthly_salary,omitempty"`
	PhotoURL      *string  `json:"photo_url,omitempty"`
}
