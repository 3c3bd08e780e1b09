// ABOUTME: Dutch income tax tables (box 1, below state pension age) per supported year
// ABOUTME: Brackets, general tax credit, labour tax credit and the 30% ruling salary cap

package salary

// bracket is one income tax band. UpTo of zero means unbounded.
type bracket struct {
	UpTo float64
	Rate float64
}

// creditStep is one segment of the labour tax credit: Base + Rate*(income-From)
// for incomes up to UpTo. UpTo of zero means unbounded.
type creditStep struct {
	UpTo float64
	From float64
	Base float64
	Rate float64
}

// TaxTable holds everything that changes between tax years
type TaxTable struct {
	Year     int
	brackets []bracket

	generalCreditMax       float64
	generalPhaseOutStart   float64
	generalPhaseOutRate    float64
	labourCredit           []creditStep
	thirtyPercentSalaryCap float64
}

var tables = map[int]*TaxTable{
	2024: {
		Year: 2024,
		brackets: []bracket{
			{UpTo: 75518, Rate: 0.3697},
			{Rate: 0.4950},
		},
		generalCreditMax:     3362,
		generalPhaseOutStart: 24812,
		generalPhaseOutRate:  0.06630,
		labourCredit: []creditStep{
			{UpTo: 11490, From: 0, Base: 0, Rate: 0.08425},
			{UpTo: 24820, From: 11490, Base: 968, Rate: 0.31433},
			{UpTo: 39957, From: 24820, Base: 5158, Rate: 0.02471},
			{UpTo: 124934, From: 39957, Base: 5532, Rate: -0.06510},
			{From: 124934, Base: 0, Rate: 0},
		},
		thirtyPercentSalaryCap: 233000,
	},
	2025: {
		Year: 2025,
		brackets: []bracket{
			{UpTo: 38441, Rate: 0.3582},
			{UpTo: 76817, Rate: 0.3748},
			{Rate: 0.4950},
		},
		generalCreditMax:     3068,
		generalPhaseOutStart: 28406,
		generalPhaseOutRate:  0.06337,
		labourCredit: []creditStep{
			{UpTo: 12169, From: 0, Base: 0, Rate: 0.08053},
			{UpTo: 26288, From: 12169, Base: 980, Rate: 0.30030},
			{UpTo: 43071, From: 26288, Base: 5220, Rate: 0.02258},
			{UpTo: 129078, From: 43071, Base: 5599, Rate: -0.06510},
			{From: 129078, Base: 0, Rate: 0},
		},
		thirtyPercentSalaryCap: 246000,
	},
}

// LatestYear is used when the input does not name a tax year
const LatestYear = 2025

// SupportedYears lists the tax years with a table, oldest first
func SupportedYears() []int {
	return []int{2024, 2025}
}

// Table returns the table for year, or nil when the year is not supported
func Table(year int) *TaxTable {
	return tables[year]
}

// bracketTax splits taxable income over the brackets
func (t *TaxTable) bracketTax(taxable float64) ([]bracketPart, float64) {
	parts := make([]bracketPart, 0, len(t.brackets))
	total := 0.0
	from := 0.0
	for _, b := range t.brackets {
		upper := b.UpTo
		inBand := taxable - from
		if upper > 0 && taxable > upper {
			inBand = upper - from
		}
		if inBand < 0 {
			inBand = 0
		}
		tax := inBand * b.Rate
		parts = append(parts, bracketPart{from: from, upTo: upper, rate: b.Rate, taxable: inBand, tax: tax})
		total += tax
		if upper == 0 {
			break
		}
		from = upper
	}
	return parts, total
}

// generalCredit is the algemene heffingskorting
func (t *TaxTable) generalCredit(taxable float64) float64 {
	credit := t.generalCreditMax
	if taxable > t.generalPhaseOutStart {
		credit -= t.generalPhaseOutRate * (taxable - t.generalPhaseOutStart)
	}
	if credit < 0 {
		return 0
	}
	return credit
}

// labourCreditFor is the arbeidskorting on employment income
func (t *TaxTable) labourCreditFor(income float64) float64 {
	if income <= 0 {
		return 0
	}
	for _, s := range t.labourCredit {
		if s.UpTo == 0 || income <= s.UpTo {
			credit := s.Base + s.Rate*(income-s.From)
			if credit < 0 {
				return 0
			}
			return credit
		}
	}
	return 0
}

type bracketPart struct {
	from    float64
	upTo    float64
	rate    float64
	taxable float64
	tax     float64
}
