package salarystructure

// Evaluate menghitung ulang seluruh nilai turunan sebuah structure.
// Urutan evaluasi penting: semua earning dijumlahkan dulu, baru deduction.
// Deduction persentase berbasis GROSS harus melihat gross final, bukan
// running sum parsial.
func Evaluate(basicSalary float64, components []SalaryComponent) (gross, totalDeductions, net float64, evaluated []SalaryComponent) {
	evaluated = make([]SalaryComponent, len(components))
	copy(evaluated, components)

	gross = basicSalary
	for i := range evaluated {
		if evaluated[i].Type != ComponentEarning {
			continue
		}
		amount := evaluated[i].Amount
		if evaluated[i].IsPercentage {
			amount = basicSalary * evaluated[i].Amount / 100
		}
		evaluated[i].CalculatedAmount = amount
		gross += amount
	}

	for i := range evaluated {
		if evaluated[i].Type != ComponentDeduction {
			continue
		}
		amount := evaluated[i].Amount
		if evaluated[i].IsPercentage {
			switch evaluated[i].CalculationBase {
			case BaseGross:
				amount = gross * evaluated[i].Amount / 100
			default:
				amount = basicSalary * evaluated[i].Amount / 100
			}
		}
		evaluated[i].CalculatedAmount = amount
		totalDeductions += amount
	}

	net = gross - totalDeductions
	return gross, totalDeductions, net, evaluated
}
