package salarystructure_test

import (
	"testing"

	"go-hrm/internal/salarystructure"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Run("fixed components", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{Name: "Allowance", Type: salarystructure.ComponentEarning, Amount: 2000},
			{Name: "Loan", Type: salarystructure.ComponentDeduction, Amount: 500},
		}

		gross, totalDeductions, net, evaluated := salarystructure.Evaluate(10000, components)

		assert.Equal(t, 12000.0, gross)
		assert.Equal(t, 500.0, totalDeductions)
		assert.Equal(t, 11500.0, net)
		assert.Equal(t, 2000.0, evaluated[0].CalculatedAmount)
		assert.Equal(t, 500.0, evaluated[1].CalculatedAmount)
	})

	t.Run("gross based deduction sees final gross", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{Name: "Bonus", Type: salarystructure.ComponentEarning, Amount: 500},
			{
				Name:            "Tax",
				Type:            salarystructure.ComponentDeduction,
				Amount:          10,
				IsPercentage:    true,
				CalculationBase: salarystructure.BaseGross,
			},
		}

		gross, totalDeductions, net, evaluated := salarystructure.Evaluate(1000, components)

		assert.Equal(t, 1500.0, gross)
		assert.Equal(t, 150.0, totalDeductions)
		assert.Equal(t, 1350.0, net)
		assert.Equal(t, 150.0, evaluated[1].CalculatedAmount)
	})

	t.Run("percentage earning resolves against basic", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{
				Name:            "HRA",
				Type:            salarystructure.ComponentEarning,
				Amount:          40,
				IsPercentage:    true,
				CalculationBase: salarystructure.BaseBasic,
			},
		}

		gross, _, _, evaluated := salarystructure.Evaluate(10000, components)

		assert.Equal(t, 14000.0, gross)
		assert.Equal(t, 4000.0, evaluated[0].CalculatedAmount)
	})

	t.Run("input slice not mutated", func(t *testing.T) {
		components := []salarystructure.SalaryComponent{
			{Name: "Bonus", Type: salarystructure.ComponentEarning, Amount: 500},
		}

		_, _, _, evaluated := salarystructure.Evaluate(1000, components)

		assert.Equal(t, 0.0, components[0].CalculatedAmount)
		assert.Equal(t, 500.0, evaluated[0].CalculatedAmount)
	})

	t.Run("no components", func(t *testing.T) {
		gross, totalDeductions, net, evaluated := salarystructure.Evaluate(7500, nil)

		assert.Equal(t, 7500.0, gross)
		assert.Equal(t, 0.0, totalDeductions)
		assert.Equal(t, 7500.0, net)
		assert.Empty(t, evaluated)
	})
}
