package payroll

// SlipData adalah input murni untuk renderer. Semua angka sudah final,
// renderer tidak boleh mengubah perhitungan apa pun.
type SlipData struct {
	EmployeeName    string     `json:"employee_name"`
	EmployeeEmail   string     `json:"employee_email"`
	Department      string     `json:"department"`
	Designation     string     `json:"designation"`
	Period          string     `json:"period"`
	TotalDays       int        `json:"total_days"`
	PayableDays     float64    `json:"payable_days"`
	UnpaidDays      float64    `json:"unpaid_days"`
	PerDaySalary    float64    `json:"per_day_salary"`
	UnpaidDeduction float64    `json:"unpaid_deduction"`
	Earnings        []LineItem `json:"earnings"`
	Deductions      []LineItem `json:"deductions"`
	GrossSalary     float64    `json:"gross_salary"`
	TotalDeductions float64    `json:"total_deductions"`
	NetSalary       float64    `json:"net_salary"`
}

const (
	ModeFlat       = "FLAT"
	ModeStructured = "STRUCTURED"
)

type SlipResponse struct {
	EmployeeID string   `json:"employee_id"`
	Month      string   `json:"month"`
	Mode       string   `json:"mode"`
	Slip       SlipData `json:"slip"`
	PDFURL     *string  `json:"pdf_url,omitempty"`
}

type GenerateSlipRequest struct {
	EmployeeID  string                `json:"employee_id" binding:"required,uuid"`
	Month       string                `json:"month" binding:"required"`
	ManualLeave *ManualLeaveDeduction `json:"manual_leave"`
	SendEmail   bool                  `json:"send_email"`
}
