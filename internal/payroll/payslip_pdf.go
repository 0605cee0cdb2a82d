package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

// buildSlipPDF merender SlipData menjadi PDF satu halaman tanpa library
// eksternal. Cukup untuk arsip slip, bukan dokumen cetak resmi.
func buildSlipPDF(data SlipData) ([]byte, error) {
	lines := slipLines(data)

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func slipLines(data SlipData) []string {
	lines := []string{
		fmt.Sprintf("Salary Slip - %s", data.Period),
		data.EmployeeName,
	}
	if data.Designation != "" || data.Department != "" {
		lines = append(lines, strings.TrimSuffix(strings.TrimSpace(data.Designation+" "+data.Department), " "))
	}
	lines = append(lines, "")

	lines = append(lines, "Earnings:")
	for _, item := range data.Earnings {
		lines = append(lines, fmt.Sprintf("  %s: %.2f", item.Name, item.Amount))
	}
	if len(data.Deductions) > 0 {
		lines = append(lines, "Deductions:")
		for _, item := range data.Deductions {
			lines = append(lines, fmt.Sprintf("  %s: %.2f", item.Name, item.Amount))
		}
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Gross Salary: %.2f", data.GrossSalary),
		fmt.Sprintf("Total Deductions: %.2f", data.TotalDeductions),
		fmt.Sprintf("Net Salary: %.2f", data.NetSalary),
		fmt.Sprintf("Payable Days: %.1f of %d", data.PayableDays, data.TotalDays),
	)
	if data.UnpaidDeduction > 0 {
		lines = append(lines, fmt.Sprintf("Unpaid Leave: %.1f day(s), deduction %.2f", data.UnpaidDays, data.UnpaidDeduction))
	}
	return lines
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
