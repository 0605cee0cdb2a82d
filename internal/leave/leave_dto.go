package leave

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	LeaveType  string  `json:"leave_type" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	DaysCount  float64 `json:"days_count" binding:"required,gt=0"`
	Reason     string  `json:"reason"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	DaysCount       float64 `json:"days_count"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type MonthlySummaryResponse struct {
	EmployeeID     string  `json:"employee_id"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	TotalLeaveDays float64 `json:"total_leave_days"`
	UnpaidDays     float64 `json:"unpaid_days"`
}

type GrantCompOffRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Days       float64 `json:"days" binding:"required,gt=0"`
	WorkDate   string  `json:"work_date" binding:"required"`
}

type UseCompOffRequest struct {
	Days float64 `json:"days" binding:"required,gt=0"`
}

type CompOffResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Days       float64 `json:"days"`
	Used       float64 `json:"used"`
	WorkDate   string  `json:"work_date"`
	ExpiryDate string  `json:"expiry_date"`
	Expired    bool    `json:"expired"`
}
