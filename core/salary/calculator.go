// ABOUTME: Salary calculator turning a gross or net amount into a bracketed tax breakdown
// ABOUTME: Pure and deterministic; net amounts are solved back to gross by bisection

package salary

import (
	"fmt"
	"math"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
)

const (
	// HolidayRate is the statutory holiday allowance
	HolidayRate = 0.08

	// ThirtyPercentRate is the tax-free share under the 30% ruling
	ThirtyPercentRate = 0.30

	defaultHoursPerWeek = 40
	weeksPerYear        = 52

	// solveTolerance is how close the solved net must come to the target
	solveTolerance = 0.001
	maxIterations  = 200
)

// Calculator computes salary breakdowns
type Calculator struct{}

// NewCalculator creates a calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate validates input, fills defaults and returns the breakdown with
// comparison scenarios
func (c *Calculator) Calculate(input domain.SalaryInput) (*domain.SalaryBreakdown, error) {
	in, err := normalize(input)
	if err != nil {
		return nil, err
	}
	table := Table(in.TaxYear)

	yearly := yearlyAmount(in)
	if in.AmountType == domain.AmountNet {
		yearly = solveGross(table, in, yearly)
	}

	result := compute(table, in, yearly)
	result.Scenarios = scenarios(table, in, yearly, result)
	return round(result), nil
}

// GrossForNet returns the yearly gross amount, in the input's holiday
// allowance mode, that yields netYear
func (c *Calculator) GrossForNet(input domain.SalaryInput, netYear float64) (float64, error) {
	input.Amount = netYear
	input.AmountType = domain.AmountNet
	input.Period = domain.PeriodYear
	in, err := normalize(input)
	if err != nil {
		return 0, err
	}
	return roundCents(solveGross(Table(in.TaxYear), in, netYear)), nil
}

func normalize(in domain.SalaryInput) (domain.SalaryInput, error) {
	if in.AmountType == "" {
		in.AmountType = domain.AmountGross
	}
	if in.Period == "" {
		in.Period = domain.PeriodYear
	}
	if in.TaxYear == 0 {
		in.TaxYear = LatestYear
	}
	if in.PartTimeFactor == 0 {
		in.PartTimeFactor = 1
	}
	if in.HoursPerWeek == 0 {
		in.HoursPerWeek = defaultHoursPerWeek
	}
	if in.HolidayAllowance == "" {
		in.HolidayAllowance = domain.HolidayAdded
	}

	switch {
	case math.IsNaN(in.Amount) || in.Amount <= 0:
		return in, &coreerrors.ValidationError{Field: "amount", Message: "amount must be positive"}
	case in.AmountType != domain.AmountGross && in.AmountType != domain.AmountNet:
		return in, &coreerrors.ValidationError{Field: "amountType", Message: "must be gross or net"}
	case Table(in.TaxYear) == nil:
		return in, &coreerrors.ValidationError{Field: "taxYear", Message: fmt.Sprintf("tax year %d is not supported", in.TaxYear)}
	case in.PartTimeFactor < 0 || in.PartTimeFactor > 1:
		return in, &coreerrors.ValidationError{Field: "partTimeFactor", Message: "must be between 0 and 1"}
	case in.HoursPerWeek < 0 || in.HoursPerWeek > 80:
		return in, &coreerrors.ValidationError{Field: "hoursPerWeek", Message: "must be between 0 and 80"}
	case in.PensionPercent < 0 || in.PensionPercent >= 100:
		return in, &coreerrors.ValidationError{Field: "pensionPercent", Message: "must be between 0 and 100"}
	case in.CompanyCarAddition < 0:
		return in, &coreerrors.ValidationError{Field: "companyCarAddition", Message: "cannot be negative"}
	}

	switch in.Period {
	case domain.PeriodYear, domain.PeriodMonth, domain.PeriodWeek, domain.PeriodHour:
	default:
		return in, &coreerrors.ValidationError{Field: "period", Message: "must be year, month, week or hour"}
	}
	switch in.HolidayAllowance {
	case domain.HolidayIncluded, domain.HolidayAdded, domain.HolidayNone:
	default:
		return in, &coreerrors.ValidationError{Field: "holidayAllowance", Message: "must be included, added or none"}
	}

	return in, nil
}

// yearlyAmount converts the input amount to a yearly figure
func yearlyAmount(in domain.SalaryInput) float64 {
	switch in.Period {
	case domain.PeriodMonth:
		return in.Amount * 12
	case domain.PeriodWeek:
		return in.Amount * weeksPerYear
	case domain.PeriodHour:
		return in.Amount * in.HoursPerWeek * weeksPerYear
	default:
		return in.Amount
	}
}

// compute builds the unrounded breakdown for a yearly gross amount
func compute(table *TaxTable, in domain.SalaryInput, yearly float64) *domain.SalaryBreakdown {
	b := &domain.SalaryBreakdown{Input: in}

	switch in.HolidayAllowance {
	case domain.HolidayIncluded:
		b.BaseSalaryYear = yearly / (1 + HolidayRate)
		b.HolidayAllowance = yearly - b.BaseSalaryYear
	case domain.HolidayAdded:
		b.BaseSalaryYear = yearly
		b.HolidayAllowance = yearly * HolidayRate
	default:
		b.BaseSalaryYear = yearly
	}
	if in.ThirteenthMonth {
		b.ThirteenthMonth = b.BaseSalaryYear / 12
	}
	b.GrossYear = b.BaseSalaryYear + b.HolidayAllowance + b.ThirteenthMonth

	b.PensionDeduction = b.GrossYear * in.PensionPercent / 100
	if in.ThirtyPercent {
		b.ThirtyPercentExempt = ThirtyPercentRate * math.Min(b.GrossYear-b.PensionDeduction, table.thirtyPercentSalaryCap)
	}
	b.CompanyCarAddition = in.CompanyCarAddition
	b.TaxableIncome = math.Max(0, b.GrossYear-b.PensionDeduction-b.ThirtyPercentExempt+b.CompanyCarAddition)

	parts, tax := table.bracketTax(b.TaxableIncome)
	b.Brackets = make([]domain.BracketTax, 0, len(parts))
	for _, p := range parts {
		bt := domain.BracketTax{From: p.from, Rate: p.rate, Taxable: p.taxable, Tax: p.tax}
		if p.upTo > 0 {
			upTo := p.upTo
			bt.To = &upTo
		}
		b.Brackets = append(b.Brackets, bt)
	}
	b.TaxBeforeCredits = tax

	// Credits cannot exceed the tax due; the general credit is applied first
	b.GeneralCredit = math.Min(table.generalCredit(b.TaxableIncome), tax)
	b.LabourCredit = math.Min(table.labourCreditFor(b.TaxableIncome), tax-b.GeneralCredit)
	b.IncomeTax = tax - b.GeneralCredit - b.LabourCredit

	b.NetYear = b.GrossYear - b.PensionDeduction - b.IncomeTax
	b.NetMonth = b.NetYear / 12
	if b.GrossYear > 0 {
		b.EffectiveRate = b.IncomeTax / b.GrossYear * 100
	}
	return b
}

// solveGross bisects for the yearly amount whose net equals netYear. Net is
// strictly increasing in gross because no marginal rate reaches 100%.
func solveGross(table *TaxTable, in domain.SalaryInput, netYear float64) float64 {
	net := func(gross float64) float64 {
		return compute(table, in, gross).NetYear
	}

	lo, hi := 0.0, netYear*2+1000
	for net(hi) < netYear {
		hi *= 2
	}

	for i := 0; i < maxIterations; i++ {
		mid := (lo + hi) / 2
		got := net(mid)
		if math.Abs(got-netYear) < solveTolerance {
			return mid
		}
		if got < netYear {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// round rounds every money amount to cents and the rate to two decimals
func round(b *domain.SalaryBreakdown) *domain.SalaryBreakdown {
	for _, p := range []*float64{
		&b.BaseSalaryYear, &b.HolidayAllowance, &b.ThirteenthMonth, &b.GrossYear,
		&b.PensionDeduction, &b.ThirtyPercentExempt, &b.CompanyCarAddition, &b.TaxableIncome,
		&b.TaxBeforeCredits, &b.GeneralCredit, &b.LabourCredit, &b.IncomeTax,
		&b.NetYear, &b.NetMonth, &b.EffectiveRate,
	} {
		*p = roundCents(*p)
	}
	for i := range b.Brackets {
		b.Brackets[i].Taxable = roundCents(b.Brackets[i].Taxable)
		b.Brackets[i].Tax = roundCents(b.Brackets[i].Tax)
	}
	for i := range b.Scenarios {
		s := &b.Scenarios[i]
		s.GrossYear = roundCents(s.GrossYear)
		s.NetYear = roundCents(s.NetYear)
		s.NetMonth = roundCents(s.NetMonth)
		s.DeltaNetYear = roundCents(s.DeltaNetYear)
	}
	return b
}
