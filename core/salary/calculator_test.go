package salary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
)

func TestCalculate_Gross2025(t *testing.T) {
	b, err := NewCalculator().Calculate(domain.SalaryInput{
		Amount:           60000,
		TaxYear:          2025,
		HolidayAllowance: domain.HolidayNone,
	})
	require.NoError(t, err)

	assert.Equal(t, 60000.0, b.GrossYear)
	assert.Equal(t, 21849.88, b.TaxBeforeCredits)
	assert.Equal(t, 1065.89, b.GeneralCredit)
	assert.Equal(t, 4496.92, b.LabourCredit)
	assert.Equal(t, 16287.07, b.IncomeTax)
	assert.Equal(t, 43712.93, b.NetYear)
	assert.Equal(t, 3642.74, b.NetMonth)

	require.Len(t, b.Brackets, 3)
	assert.Equal(t, 38441.0, b.Brackets[0].Taxable)
	assert.Equal(t, 21559.0, b.Brackets[1].Taxable)
	assert.Equal(t, 0.0, b.Brackets[2].Taxable)
	assert.Nil(t, b.Brackets[2].To)
}

func TestCalculate_Gross2024(t *testing.T) {
	b, err := NewCalculator().Calculate(domain.SalaryInput{
		Amount:           30000,
		TaxYear:          2024,
		HolidayAllowance: domain.HolidayNone,
	})
	require.NoError(t, err)

	assert.Equal(t, 11091.0, b.TaxBeforeCredits)
	assert.Equal(t, 3018.04, b.GeneralCredit)
	assert.Equal(t, 5286.0, b.LabourCredit)
	assert.Equal(t, 27213.03, b.NetYear)
}

func TestCalculate_BracketTotalsMatchTax(t *testing.T) {
	for _, year := range SupportedYears() {
		for _, gross := range []float64{5000, 24000, 45000, 80000, 150000, 400000} {
			b, err := NewCalculator().Calculate(domain.SalaryInput{Amount: gross, TaxYear: year, HolidayAllowance: domain.HolidayNone})
			require.NoError(t, err)

			taxable, tax := 0.0, 0.0
			for _, br := range b.Brackets {
				taxable += br.Taxable
				tax += br.Tax
			}
			assert.InDelta(t, b.TaxableIncome, taxable, 0.02, "year %d gross %.0f", year, gross)
			assert.InDelta(t, b.TaxBeforeCredits, tax, 0.02, "year %d gross %.0f", year, gross)
			assert.GreaterOrEqual(t, b.IncomeTax, 0.0)
		}
	}
}

func TestCalculate_NetIsMonotonicInGross(t *testing.T) {
	calc := NewCalculator()
	for _, year := range SupportedYears() {
		prev := -1.0
		for gross := 1000.0; gross <= 300000; gross += 750 {
			b, err := calc.Calculate(domain.SalaryInput{Amount: gross, TaxYear: year, HolidayAllowance: domain.HolidayNone})
			require.NoError(t, err)
			assert.Greater(t, b.NetYear, prev, "year %d gross %.0f", year, gross)
			prev = b.NetYear
		}
	}
}

func TestCalculate_NetRoundTrip(t *testing.T) {
	calc := NewCalculator()
	inputs := []domain.SalaryInput{
		{Amount: 3500, Period: domain.PeriodMonth},
		{Amount: 52000, HolidayAllowance: domain.HolidayIncluded, PensionPercent: 5},
		{Amount: 95000, ThirtyPercent: true, TaxYear: 2024},
		{Amount: 28.5, Period: domain.PeriodHour, HoursPerWeek: 32},
	}

	for _, in := range inputs {
		gross, err := calc.Calculate(in)
		require.NoError(t, err)

		back := in
		back.Amount = gross.NetYear
		back.Period = domain.PeriodYear
		back.AmountType = domain.AmountNet
		net, err := calc.Calculate(back)
		require.NoError(t, err)

		assert.InDelta(t, gross.NetYear, net.NetYear, 0.01)
		assert.InDelta(t, gross.GrossYear, net.GrossYear, 0.05)
	}
}

func TestGrossForNet(t *testing.T) {
	calc := NewCalculator()
	in := domain.SalaryInput{TaxYear: 2025, HolidayAllowance: domain.HolidayNone}

	gross, err := calc.GrossForNet(in, 43712.93)
	require.NoError(t, err)
	assert.InDelta(t, 60000, gross, 0.05)
}

func TestCalculate_HolidayAllowanceModes(t *testing.T) {
	calc := NewCalculator()

	added, err := calc.Calculate(domain.SalaryInput{Amount: 50000, HolidayAllowance: domain.HolidayAdded})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, added.HolidayAllowance)
	assert.Equal(t, 54000.0, added.GrossYear)

	included, err := calc.Calculate(domain.SalaryInput{Amount: 54000, HolidayAllowance: domain.HolidayIncluded})
	require.NoError(t, err)
	assert.Equal(t, 50000.0, included.BaseSalaryYear)
	assert.Equal(t, 4000.0, included.HolidayAllowance)
	assert.Equal(t, added.NetYear, included.NetYear)

	none, err := calc.Calculate(domain.SalaryInput{Amount: 50000, HolidayAllowance: domain.HolidayNone})
	require.NoError(t, err)
	assert.Zero(t, none.HolidayAllowance)
	assert.Less(t, none.NetYear, added.NetYear)
}

func TestCalculate_ThirtyPercentRuling(t *testing.T) {
	calc := NewCalculator()

	with, err := calc.Calculate(domain.SalaryInput{Amount: 80000, ThirtyPercent: true, HolidayAllowance: domain.HolidayNone})
	require.NoError(t, err)
	assert.Equal(t, 24000.0, with.ThirtyPercentExempt)
	assert.Equal(t, 56000.0, with.TaxableIncome)

	capped, err := calc.Calculate(domain.SalaryInput{Amount: 300000, ThirtyPercent: true, HolidayAllowance: domain.HolidayNone})
	require.NoError(t, err)
	assert.Equal(t, 73800.0, capped.ThirtyPercentExempt)

	var without *domain.Scenario
	for i := range with.Scenarios {
		if with.Scenarios[i].Name == "without30" {
			without = &with.Scenarios[i]
		}
	}
	require.NotNil(t, without)
	assert.Less(t, without.DeltaNetYear, 0.0)
}

func TestCalculate_Scenarios(t *testing.T) {
	b, err := NewCalculator().Calculate(domain.SalaryInput{
		Amount:           3000,
		Period:           domain.PeriodMonth,
		PartTimeFactor:   0.8,
		HolidayAllowance: domain.HolidayNone,
	})
	require.NoError(t, err)

	names := make([]string, 0, len(b.Scenarios))
	for _, s := range b.Scenarios {
		names = append(names, s.Name)
		assert.Greater(t, s.DeltaNetYear, 0.0, s.Name)
	}
	assert.Equal(t, []string{"fulltime", "raise", "holiday"}, names)
	assert.Equal(t, 45000.0, b.Scenarios[0].GrossYear)
}

func TestCalculate_CompanyCarAndPension(t *testing.T) {
	calc := NewCalculator()
	plain, err := calc.Calculate(domain.SalaryInput{Amount: 60000, HolidayAllowance: domain.HolidayNone})
	require.NoError(t, err)

	car, err := calc.Calculate(domain.SalaryInput{Amount: 60000, HolidayAllowance: domain.HolidayNone, CompanyCarAddition: 8000})
	require.NoError(t, err)
	assert.Equal(t, 68000.0, car.TaxableIncome)
	assert.Less(t, car.NetYear, plain.NetYear)

	pension, err := calc.Calculate(domain.SalaryInput{Amount: 60000, HolidayAllowance: domain.HolidayNone, PensionPercent: 5})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, pension.PensionDeduction)
	assert.Equal(t, 57000.0, pension.TaxableIncome)
}

func TestCalculate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input domain.SalaryInput
		field string
	}{
		{"zero amount", domain.SalaryInput{}, "amount"},
		{"nan amount", domain.SalaryInput{Amount: math.NaN()}, "amount"},
		{"unknown year", domain.SalaryInput{Amount: 1000, TaxYear: 2019}, "taxYear"},
		{"bad period", domain.SalaryInput{Amount: 1000, Period: "decade"}, "period"},
		{"bad type", domain.SalaryInput{Amount: 1000, AmountType: "bruto"}, "amountType"},
		{"part time above one", domain.SalaryInput{Amount: 1000, PartTimeFactor: 1.5}, "partTimeFactor"},
		{"bad holiday mode", domain.SalaryInput{Amount: 1000, HolidayAllowance: "sometimes"}, "holidayAllowance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculator().Calculate(tt.input)
			var verr *coreerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
