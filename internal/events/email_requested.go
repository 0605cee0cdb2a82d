package events

import "time"

const EmailRequestedTopic = "hr.notification.email.requested.v1"

// Jenis email yang lewat pipeline notifikasi.
const (
	EmailKindPayslip              = "payslip"
	EmailKindReimbursementReject  = "reimbursement_rejected"
	EmailKindReimbursementCleared = "reimbursement_cleared"
	EmailKindPasswordReset        = "password_reset"
)

// EmailRequestedEvent dibuat di transaksi yang sama dengan perubahan state
// (outbox pattern): transisi selalu commit dulu, pengiriman email menyusul
// dan tidak pernah membatalkan transisi.
type EmailRequestedEvent struct {
	EventType  string    `json:"event_type"`
	Kind       string    `json:"kind"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	HTMLBody   string    `json:"html_body"`
	OccurredAt time.Time `json:"occurred_at"`
}
