package payroll

import (
	"bytes"
	"html/template"
)

// Template slip dipakai untuk body email dan sumber baris PDF.
// Callout potongan unpaid leave hanya muncul kalau memang ada potongan.
const slipTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Salary Slip - {{.Period}}</h2>
  <p>
    <strong>{{.EmployeeName}}</strong><br>
    {{if .Designation}}{{.Designation}}{{if .Department}}, {{end}}{{end}}{{.Department}}
  </p>
  <table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">
    <tr><th align="left">Earnings</th><th align="right">Amount</th></tr>
    {{range .Earnings}}
    <tr><td>{{.Name}}</td><td align="right">{{printf "%.2f" .Amount}}</td></tr>
    {{end}}
    {{if .Deductions}}
    <tr><th align="left">Deductions</th><th align="right">Amount</th></tr>
    {{range .Deductions}}
    <tr><td>{{.Name}}</td><td align="right">{{printf "%.2f" .Amount}}</td></tr>
    {{end}}
    {{end}}
    <tr><td><strong>Gross Salary</strong></td><td align="right">{{printf "%.2f" .GrossSalary}}</td></tr>
    <tr><td><strong>Total Deductions</strong></td><td align="right">{{printf "%.2f" .TotalDeductions}}</td></tr>
    <tr><td><strong>Net Salary</strong></td><td align="right"><strong>{{printf "%.2f" .NetSalary}}</strong></td></tr>
  </table>
  <p>Payable days: {{printf "%.1f" .PayableDays}} of {{.TotalDays}}</p>
  {{if gt .UnpaidDeduction 0.0}}
  <p style="color: #a33;">
    Unpaid leave: {{printf "%.1f" .UnpaidDays}} day(s),
    deduction {{printf "%.2f" .UnpaidDeduction}}
    {{if gt .PerDaySalary 0.0}}({{printf "%.2f" .PerDaySalary}}/day){{end}}
  </p>
  {{end}}
</body>
</html>`

var slipTmpl = template.Must(template.New("payslip").Parse(slipTemplate))

func RenderSlipHTML(data SlipData) (string, error) {
	var buf bytes.Buffer
	if err := slipTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
