// ABOUTME: Local financial heuristics merged into the provider's indicators
// ABOUTME: Derives company age, employee trend and sector risk from registry data

package profile

import (
	"strings"
	"time"

	"kvk-insights-api/core/domain"
	timeutil "kvk-insights-api/pkg/utils/time"
)

// sectorRisk maps two-digit SBI divisions to a risk tier. Unlisted
// divisions are medium.
var sectorRisk = map[string]domain.RiskTier{
	"41": domain.RiskHigh, "42": domain.RiskHigh, "43": domain.RiskHigh, // construction
	"55": domain.RiskHigh, "56": domain.RiskHigh, // hospitality
	"47": domain.RiskMedium, // retail
	"49": domain.RiskMedium, // land transport
	"62": domain.RiskLow, "63": domain.RiskLow, // ICT
	"69": domain.RiskLow, "70": domain.RiskLow, "71": domain.RiskLow, // professional services
	"84": domain.RiskLow, "85": domain.RiskLow, // government, education
	"86": domain.RiskLow, "87": domain.RiskLow, "88": domain.RiskLow, // healthcare
}

// enrichFinancial fills the fields the provider left empty. ind may be nil,
// in which case a heuristics-only result is returned.
func enrichFinancial(ind *domain.FinancialIndicators, identity *domain.Identity, now time.Time) *domain.FinancialIndicators {
	out := &domain.FinancialIndicators{}
	if ind != nil {
		copied := *ind
		out = &copied
	}

	if identity != nil {
		if out.CompanyAgeYears == nil && identity.FoundedOn != nil {
			age := timeutil.YearsBetween(*identity.FoundedOn, now)
			out.CompanyAgeYears = &age
		}
		if out.SectorRisk == "" {
			out.SectorRisk = sectorRiskFor(identity.PrimarySbi())
		}
	}

	if out.EmployeeTrend == "" {
		out.EmployeeTrend = employeeTrend(out.EmployeeHistory)
	}

	if out.Risk == "" || out.Risk == domain.RiskUnknown {
		out.Risk = riskFromCredit(out.CreditScore)
	}

	return out
}

func sectorRiskFor(sbi string) domain.RiskTier {
	sbi = strings.ReplaceAll(sbi, ".", "")
	if len(sbi) < 2 {
		return domain.RiskUnknown
	}
	if tier, ok := sectorRisk[sbi[:2]]; ok {
		return tier
	}
	return domain.RiskMedium
}

// employeeTrend compares the first and last yearly headcount. A change of
// more than 10% either way is growth or shrinkage.
func employeeTrend(history []domain.EmployeeCount) domain.EmployeeTrend {
	if len(history) < 2 {
		return domain.TrendUnknown
	}
	first, last := history[0], history[len(history)-1]
	for _, h := range history {
		if h.Year < first.Year {
			first = h
		}
		if h.Year > last.Year {
			last = h
		}
	}
	if first.Year == last.Year || first.Count <= 0 {
		return domain.TrendUnknown
	}

	change := float64(last.Count-first.Count) / float64(first.Count)
	switch {
	case change > 0.10:
		return domain.TrendGrowing
	case change < -0.10:
		return domain.TrendShrinking
	default:
		return domain.TrendStable
	}
}

func riskFromCredit(score *int) domain.RiskTier {
	if score == nil {
		return domain.RiskUnknown
	}
	switch {
	case *score >= 70:
		return domain.RiskLow
	case *score >= 40:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
