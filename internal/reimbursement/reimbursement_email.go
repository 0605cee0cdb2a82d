package reimbursement

import (
	"bytes"
	"html/template"
	"time"
)

const rejectedEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h3>Reimbursement Ditolak</h3>
  <p>Halo {{.EmployeeName}},</p>
  <p>Pengajuan reimbursement <strong>{{.Title}}</strong> sebesar
  <strong>{{printf "%.2f" .Amount}}</strong> ditolak.</p>
  <p>Alasan: {{.Remarks}}</p>
</body>
</html>`

const clearedEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h3>Reimbursement Dibayarkan</h3>
  <p>Halo {{.EmployeeName}},</p>
  <p>Reimbursement <strong>{{.Title}}</strong> sebesar
  <strong>{{printf "%.2f" .Amount}}</strong> telah dibayarkan pada {{.ClearedAt.Format "2 January 2006"}}.</p>
  {{if .Note}}<p>Catatan: {{.Note}}</p>{{end}}
</body>
</html>`

var (
	rejectedEmailTmpl = template.Must(template.New("reimbursement_rejected").Parse(rejectedEmailTemplate))
	clearedEmailTmpl  = template.Must(template.New("reimbursement_cleared").Parse(clearedEmailTemplate))
)

type rejectedEmailData struct {
	EmployeeName string
	Title        string
	Amount       float64
	Remarks      string
}

type clearedEmailData struct {
	EmployeeName string
	Title        string
	Amount       float64
	ClearedAt    time.Time
	Note         string
}

func renderRejectedEmail(data rejectedEmailData) (string, error) {
	var buf bytes.Buffer
	if err := rejectedEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderClearedEmail(data clearedEmailData) (string, error) {
	var buf bytes.Buffer
	if err := clearedEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
