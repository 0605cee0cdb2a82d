package payroll_test

import (
	"testing"

	"go-hrm/internal/payroll"
	"go-hrm/internal/salarystructure"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFlat(t *testing.T) {
	t.Run("february with unpaid days", func(t *testing.T) {
		calc := payroll.CalculateFlat(31000, 2026, 2, 2)

		assert.Equal(t, 28, calc.TotalDays)
		assert.InDelta(t, 1107.14, calc.PerDaySalary, 0.01)
		assert.InDelta(t, 2214.29, calc.UnpaidDeduction, 0.01)
		assert.InDelta(t, 28785.71, calc.NetSalary, 0.01)
		assert.Equal(t, 26.0, calc.PayableDays)
		assert.Equal(t, 31000.0, calc.GrossSalary)
	})

	t.Run("no unpaid days pays full month", func(t *testing.T) {
		calc := payroll.CalculateFlat(31000, 2026, 1, 0)

		assert.Equal(t, 31, calc.TotalDays)
		assert.Equal(t, 31000.0, calc.NetSalary)
		assert.Equal(t, 0.0, calc.UnpaidDeduction)
		assert.Equal(t, 31.0, calc.PayableDays)
	})

	t.Run("leap year february", func(t *testing.T) {
		calc := payroll.CalculateFlat(29000, 2024, 2, 1)

		assert.Equal(t, 29, calc.TotalDays)
		assert.InDelta(t, 1000.0, calc.PerDaySalary, 0.0001)
		assert.InDelta(t, 28000.0, calc.NetSalary, 0.0001)
	})
}

func TestCalculateStructured(t *testing.T) {
	t.Run("percentage of gross sees final gross", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{
				Name:   "Allowance",
				Type:   salarystructure.ComponentEarning,
				Amount: 500,
			},
			{
				Name:            "Tax",
				Type:            salarystructure.ComponentDeduction,
				Amount:          10,
				IsPercentage:    true,
				CalculationBase: salarystructure.BaseGross,
			},
		}

		calc := payroll.CalculateStructured(1000, components, 2026, 3, nil)

		assert.Equal(t, 1500.0, calc.GrossSalary)
		// 10% dari gross final 1500, bukan dari basic 1000
		assert.Equal(t, 150.0, calc.TotalDeductions)
		assert.Equal(t, 1350.0, calc.NetSalary)
	})

	t.Run("percentage of basic", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{
				Name:            "HRA",
				Type:            salarystructure.ComponentEarning,
				Amount:          40,
				IsPercentage:    true,
				CalculationBase: salarystructure.BaseBasic,
			},
			{
				Name:            "PF",
				Type:            salarystructure.ComponentDeduction,
				Amount:          12,
				IsPercentage:    true,
				CalculationBase: salarystructure.BaseBasic,
			},
		}

		calc := payroll.CalculateStructured(10000, components, 2026, 3, nil)

		assert.Equal(t, 14000.0, calc.GrossSalary)
		assert.Equal(t, 1200.0, calc.TotalDeductions)
		assert.Equal(t, 12800.0, calc.NetSalary)
	})

	t.Run("net equals gross minus deductions", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{Name: "Bonus", Type: salarystructure.ComponentEarning, Amount: 1234.56},
			{Name: "Loan", Type: salarystructure.ComponentDeduction, Amount: 789.01},
		}

		calc := payroll.CalculateStructured(9876.54, components, 2026, 7, nil)

		assert.InDelta(t, calc.GrossSalary-calc.TotalDeductions, calc.NetSalary, 0.0001)
	})

	t.Run("manual unpaid leave trusted as provided", func(t *testing.T) {
		manual := &payroll.ManualLeaveDeduction{
			UnpaidFullDays:      2,
			UnpaidHalfDays:      1,
			PerFullDayDeduction: 100,
			PerHalfDayDeduction: 50,
			Total:               999, // sengaja tidak cocok dengan rate x hari
		}

		calc := payroll.CalculateStructured(5000, nil, 2026, 4, manual)

		assert.Equal(t, 999.0, calc.TotalDeductions)
		assert.Equal(t, 30.0-2.5, calc.PayableDays)

		last := calc.Deductions[len(calc.Deductions)-1]
		assert.Equal(t, "Unpaid Leave", last.Name)
		assert.Equal(t, 999.0, last.Amount)
	})

	t.Run("basic salary always first earning line", func(t *testing.T) {
		calc := payroll.CalculateStructured(5000, nil, 2026, 4, nil)

		assert.Len(t, calc.Earnings, 1)
		assert.Equal(t, "Basic Salary", calc.Earnings[0].Name)
		assert.Equal(t, 5000.0, calc.Earnings[0].Amount)
		assert.Empty(t, calc.Deductions)
	})

	t.Run("stored calculated amount used for fixed components", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{
				Name:             "Transport",
				Type:             salarystructure.ComponentEarning,
				Amount:           300,
				CalculatedAmount: 350,
			},
		}

		calc := payroll.CalculateStructured(1000, components, 2026, 5, nil)

		assert.Equal(t, 1350.0, calc.GrossSalary)
	})
}
