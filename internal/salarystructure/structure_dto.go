package salarystructure

import "time"

type ComponentRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Type            string  `json:"type" binding:"required,oneof=EARNING DEDUCTION"`
	Amount          float64 `json:"amount" binding:"required,gte=0"`
	IsPercentage    bool    `json:"is_percentage"`
	CalculationBase string  `json:"calculation_base" binding:"omitempty,oneof=BASIC GROSS"`
}

type SaveStructureRequest struct {
	EmployeeID  string             `json:"employee_id" binding:"required,uuid"`
	BasicSalary float64            `json:"basic_salary" binding:"required,gt=0"`
	Components  []ComponentRequest `json:"components" binding:"omitempty,dive"`
}

type ComponentResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Amount           float64 `json:"amount"`
	IsPercentage     bool    `json:"is_percentage"`
	CalculationBase  string  `json:"calculation_base"`
	CalculatedAmount float64 `json:"calculated_amount"`
	Position         int     `json:"position"`
}

type StructureResponse struct {
	ID              string              `json:"id"`
	EmployeeID      string              `json:"employee_id"`
	BasicSalary     float64             `json:"basic_salary"`
	GrossSalary     float64             `json:"gross_salary"`
	TotalDeductions float64             `json:"total_deductions"`
	NetSalary       float64             `json:"net_salary"`
	Components      []ComponentResponse `json:"components"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type TemplateItemRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=EARNING DEDUCTION"`
}

type SaveTemplateRequest struct {
	Items []TemplateItemRequest `json:"items" binding:"required,dive"`
}

type TemplateItemResponse struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}
