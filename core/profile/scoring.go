// ABOUTME: Deterministic 0..100 sub-scores derived from the gathered profile sections
// ABOUTME: Legal records only ever lower a score; positive reviews only ever raise reputation

package profile

import (
	"math"

	"kvk-insights-api/core/domain"
)

// Score weights. Legal penalties are subtracted after weighting so a legal
// record can never raise a score.
const (
	weightGrowth     = 0.30
	weightDigital    = 0.25
	weightReputation = 0.30
	weightStability  = 0.15

	// reviewPrior is the number of neutral pseudo-reviews mixed into the
	// reputation score so a handful of ratings cannot swing it to an extreme
	reviewPrior = 5.0

	// positiveRating is the lowest star rating that counts as a positive review
	positiveRating = 3.5
)

type legalPenalties struct {
	bankruptcy  float64
	suspension  float64
	dissolution float64
}

var (
	growthPenalties  = legalPenalties{bankruptcy: 30, suspension: 20, dissolution: 25}
	overallPenalties = legalPenalties{bankruptcy: 40, suspension: 30, dissolution: 25}
)

// ComputeScores derives the growth, digital, reputation and overall scores
func ComputeScores(p *domain.CompanyProfile) domain.Scores {
	growth := growthScore(p)
	digital := digitalScore(p)
	reputation := reputationScore(p.Reviews)
	stability := stabilityScore(p.Financial)

	overall := weightGrowth*growth + weightDigital*digital + weightReputation*reputation + weightStability*stability
	overall -= overallPenalties.apply(p.LegalStatus)
	if p.Financial != nil && p.Financial.Risk == domain.RiskHigh {
		overall -= 10
	}

	return domain.Scores{
		Growth:     clampScore(growth),
		Digital:    clampScore(digital),
		Reputation: clampScore(reputation),
		Overall:    clampScore(overall),
	}
}

func growthScore(p *domain.CompanyProfile) float64 {
	score := 40.0
	if p.Financial != nil {
		switch p.Financial.EmployeeTrend {
		case domain.TrendGrowing:
			score += 25
		case domain.TrendStable:
			score += 10
		case domain.TrendShrinking:
			score -= 15
		}
	}
	score += 3 * float64(min(len(p.News), 5))
	if p.Relations != nil {
		score += 2 * float64(min(len(p.Relations.Subsidiaries), 5))
	}
	return score - growthPenalties.apply(p.LegalStatus)
}

func digitalScore(p *domain.CompanyProfile) float64 {
	score := 10.0
	w := p.WebPresence
	if w == nil {
		return score
	}
	if w.Website != "" {
		score += 20
	}
	if w.Email != "" {
		score += 5
	}
	if w.Phone != "" {
		score += 5
	}
	score += math.Min(6*float64(w.Socials.Count()), 30)
	score += math.Min(6*float64(w.TechStack.Categories()), 30)
	return score
}

// reputationScore counts a review rated at or above positiveRating as fully
// positive. Lower ratings split between positive and negative weight, down to
// fully negative at one star. The result is smoothed towards 50 by reviewPrior.
func reputationScore(r *domain.Reviews) float64 {
	positive, negative := 0.0, 0.0
	if r != nil {
		for _, pl := range r.Platforms {
			if pl.Count <= 0 {
				continue
			}
			count := float64(pl.Count)
			rating := math.Max(1, math.Min(5, pl.Rating))
			if rating >= positiveRating {
				positive += count
				continue
			}
			share := (rating - 1) / (positiveRating - 1)
			positive += count * share
			negative += count * (1 - share)
		}
	}
	return 100 * (positive + reviewPrior) / (positive + negative + 2*reviewPrior)
}

func stabilityScore(f *domain.FinancialIndicators) float64 {
	score := 50.0
	if f == nil {
		return score
	}
	if f.CreditScore != nil {
		score = float64(*f.CreditScore)
	}
	if f.CompanyAgeYears != nil {
		score += float64(min(*f.CompanyAgeYears, 20))
	}
	return math.Min(score, 100)
}

func (lp legalPenalties) apply(l *domain.LegalStatus) float64 {
	if l == nil {
		return 0
	}
	penalty := 0.0
	if l.Bankruptcy != nil {
		penalty += lp.bankruptcy
	}
	if l.Suspension != nil {
		penalty += lp.suspension
	}
	if l.Dissolution != nil {
		penalty += lp.dissolution
	}
	return penalty
}

func clampScore(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
