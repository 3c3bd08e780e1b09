// ABOUTME: Comparison scenarios shown next to the main salary breakdown
// ABOUTME: Each scenario recomputes the breakdown with one input changed

package salary

import "kvk-insights-api/core/domain"

// RaisePercent is the raise used by the raise scenario
const RaisePercent = 5

func scenarios(table *TaxTable, in domain.SalaryInput, yearly float64, base *domain.SalaryBreakdown) []domain.Scenario {
	out := []domain.Scenario{}
	add := func(name, label string, b *domain.SalaryBreakdown) {
		out = append(out, domain.Scenario{
			Name:         name,
			Label:        label,
			GrossYear:    b.GrossYear,
			NetYear:      b.NetYear,
			NetMonth:     b.NetMonth,
			DeltaNetYear: b.NetYear - base.NetYear,
		})
	}

	if in.PartTimeFactor < 1 {
		add("fulltime", "Voltijd (100%)", compute(table, in, yearly/in.PartTimeFactor))
	}

	add("raise", "Met 5% loonsverhoging", compute(table, in, yearly*(1+RaisePercent/100.0)))

	if in.ThirtyPercent {
		without := in
		without.ThirtyPercent = false
		add("without30", "Zonder 30%-regeling", compute(table, without, yearly))
	}

	if in.HolidayAllowance == domain.HolidayNone {
		with := in
		with.HolidayAllowance = domain.HolidayAdded
		add("holiday", "Met 8% vakantiegeld", compute(table, with, yearly))
	}

	return out
}
