package payroll

import (
	"time"

	"go-hrm/internal/salarystructure"
)

type LineItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FlatCalculation: slip gaji flat tanpa salary structure.
// Gaji dipotong proporsional per hari unpaid leave.
type FlatCalculation struct {
	TotalDays       int     `json:"total_days"`
	PerDaySalary    float64 `json:"per_day_salary"`
	UnpaidDays      float64 `json:"unpaid_days"`
	UnpaidDeduction float64 `json:"unpaid_deduction"`
	GrossSalary     float64 `json:"gross_salary"`
	NetSalary       float64 `json:"net_salary"`
	PayableDays     float64 `json:"payable_days"`
}

func CalculateFlat(monthlySalary float64, year, month int, unpaidDays float64) FlatCalculation {
	totalDays := daysInMonth(year, month)
	perDay := monthlySalary / float64(totalDays)
	deduction := unpaidDays * perDay

	return FlatCalculation{
		TotalDays:       totalDays,
		PerDaySalary:    perDay,
		UnpaidDays:      unpaidDays,
		UnpaidDeduction: deduction,
		GrossSalary:     monthlySalary,
		NetSalary:       monthlySalary - deduction,
		PayableDays:     float64(totalDays) - unpaidDays,
	}
}

// ManualLeaveDeduction adalah potongan unpaid leave yang dipasok admin untuk
// slip detail. Total dipercaya apa adanya, tidak dihitung ulang dari
// rate x hari. Half day dihitung 0.5 hari untuk payable days.
type ManualLeaveDeduction struct {
	UnpaidFullDays      float64 `json:"unpaid_full_days"`
	UnpaidHalfDays      float64 `json:"unpaid_half_days"`
	PerFullDayDeduction float64 `json:"per_full_day_deduction"`
	PerHalfDayDeduction float64 `json:"per_half_day_deduction"`
	Total               float64 `json:"total"`
}

type StructuredCalculation struct {
	TotalDays       int        `json:"total_days"`
	GrossSalary     float64    `json:"gross_salary"`
	TotalDeductions float64    `json:"total_deductions"`
	NetSalary       float64    `json:"net_salary"`
	PayableDays     float64    `json:"payable_days"`
	Earnings        []LineItem `json:"earnings"`
	Deductions      []LineItem `json:"deductions"`
}

// CalculateStructured mengevaluasi komponen dalam dua fase. Semua earning
// dijumlahkan dulu supaya deduction persentase berbasis gross melihat gross
// final, bukan running sum parsial.
func CalculateStructured(
	basicSalary float64,
	components []salarystructure.SalaryComponent,
	year, month int,
	manual *ManualLeaveDeduction,
) StructuredCalculation {
	totalDays := daysInMonth(year, month)

	earnings := []LineItem{{Name: "Basic Salary", Amount: basicSalary}}
	gross := basicSalary
	for _, c := range components {
		if c.Type != salarystructure.ComponentEarning {
			continue
		}
		amount := resolveAmount(c)
		if c.IsPercentage && c.CalculationBase == salarystructure.BaseBasic {
			amount = basicSalary * c.Amount / 100
		}
		earnings = append(earnings, LineItem{Name: c.Name, Amount: amount})
		gross += amount
	}

	var deductions []LineItem
	var totalDeductions float64
	for _, c := range components {
		if c.Type != salarystructure.ComponentDeduction {
			continue
		}
		amount := resolveAmount(c)
		if c.IsPercentage {
			switch c.CalculationBase {
			case salarystructure.BaseGross:
				amount = gross * c.Amount / 100
			case salarystructure.BaseBasic:
				amount = basicSalary * c.Amount / 100
			}
		}
		deductions = append(deductions, LineItem{Name: c.Name, Amount: amount})
		totalDeductions += amount
	}

	payableDays := float64(totalDays)
	if manual != nil {
		deductions = append(deductions, LineItem{Name: "Unpaid Leave", Amount: manual.Total})
		totalDeductions += manual.Total
		payableDays -= manual.UnpaidFullDays + manual.UnpaidHalfDays*0.5
	}

	return StructuredCalculation{
		TotalDays:       totalDays,
		GrossSalary:     gross,
		TotalDeductions: totalDeductions,
		NetSalary:       gross - totalDeductions,
		PayableDays:     payableDays,
		Earnings:        earnings,
		Deductions:      deductions,
	}
}

// resolveAmount: pakai calculated_amount tersimpan kalau ada, fallback ke
// raw amount. Komponen persentase di-resolve ulang oleh pemanggil.
func resolveAmount(c salarystructure.SalaryComponent) float64 {
	if c.CalculatedAmount != 0 {
		return c.CalculatedAmount
	}
	return c.Amount
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
