// ABOUTME: Rule-based narrative used when the narrative generator is off or fails
// ABOUTME: Also computes the confidence percentage from how many sources answered

package profile

import (
	"fmt"
	"math"
	"strings"

	"kvk-insights-api/core/domain"
)

const (
	// degradedPenalty is subtracted from the confidence of a rule-based narrative
	degradedPenalty = 25
	minConfidence   = 5
)

// baseConfidence maps the share of answered non-analysis keys onto 30..100
func baseConfidence(keys []string, out *outcomes) int {
	total, ok := 0, 0
	for _, k := range keys {
		if k == domain.KeyAIAnalysis {
			continue
		}
		total++
		if out.succeeded(k) {
			ok++
		}
	}
	if total == 0 {
		return 30
	}
	return int(math.Round(30 + 70*float64(ok)/float64(total)))
}

func degradedConfidence(c int) int {
	return max(c-degradedPenalty, minConfidence)
}

// RuleNarrative writes a Dutch summary with strengths, concerns and
// recommendations from the profile data and scores
func RuleNarrative(p *domain.CompanyProfile, scores domain.Scores) *domain.Analysis {
	analysis := &domain.Analysis{
		Summary:         ruleSummary(p, scores),
		Strengths:       []string{},
		Concerns:        []string{},
		Recommendations: []string{},
		Scores:          scores,
		Origin:          domain.NarrativeRules,
	}

	var age *int
	var trend domain.EmployeeTrend
	if p.Financial != nil {
		age = p.Financial.CompanyAgeYears
		trend = p.Financial.EmployeeTrend
	}
	reviewCount := 0
	if p.Reviews != nil {
		reviewCount = p.Reviews.TotalCount
	}

	if scores.Growth >= 65 {
		analysis.Strengths = append(analysis.Strengths, "Duidelijke groeisignalen")
	}
	if trend == domain.TrendGrowing {
		analysis.Strengths = append(analysis.Strengths, "Groeiend personeelsbestand")
	}
	if scores.Digital >= 60 {
		analysis.Strengths = append(analysis.Strengths, "Sterke digitale aanwezigheid")
	}
	if reviewCount > 0 && scores.Reputation >= 70 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("Positieve klantbeoordelingen (gemiddeld %.1f uit %d reviews)", p.Reviews.AverageRating, reviewCount))
	}
	if age != nil && *age >= 10 {
		analysis.Strengths = append(analysis.Strengths, fmt.Sprintf("Gevestigd bedrijf met %d jaar ervaring", *age))
	}
	if l := p.LegalStatus; l != nil && l.Bankruptcy == nil && l.Suspension == nil && l.Dissolution == nil {
		analysis.Strengths = append(analysis.Strengths, "Geen insolventie- of ontbindingsregistraties")
	}

	if l := p.LegalStatus; l != nil {
		if l.Bankruptcy != nil {
			analysis.Concerns = append(analysis.Concerns, "Faillissement geregistreerd op "+l.Bankruptcy.Date.Format("02-01-2006"))
		}
		if l.Suspension != nil {
			analysis.Concerns = append(analysis.Concerns, "Surseance van betaling geregistreerd")
		}
		if l.Dissolution != nil {
			analysis.Concerns = append(analysis.Concerns, "Ontbinding geregistreerd")
		}
	}
	if p.Financial != nil && p.Financial.Risk == domain.RiskHigh {
		analysis.Concerns = append(analysis.Concerns, "Verhoogd financieel risico")
	}
	if trend == domain.TrendShrinking {
		analysis.Concerns = append(analysis.Concerns, "Krimpend personeelsbestand")
	}
	if reviewCount > 0 && scores.Reputation < 40 {
		analysis.Concerns = append(analysis.Concerns, "Overwegend negatieve klantbeoordelingen")
	}
	if scores.Digital < 35 {
		analysis.Concerns = append(analysis.Concerns, "Beperkte online aanwezigheid")
	}

	if l := p.LegalStatus; l != nil && (l.Bankruptcy != nil || l.Suspension != nil) {
		analysis.Recommendations = append(analysis.Recommendations, "Vraag zekerheden of vooruitbetaling bij nieuwe opdrachten")
	}
	if scores.Digital < 50 {
		analysis.Recommendations = append(analysis.Recommendations, "Investeer in website en social media om de online vindbaarheid te vergroten")
	}
	if w := p.WebPresence; w != nil && w.TechStack != nil && len(w.TechStack.Analytics) == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "Implementeer webanalyse om bezoekersgedrag te meten")
	}
	if reviewCount == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "Verzamel actief klantbeoordelingen op Google en Trustpilot")
	}
	if len(analysis.Recommendations) == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "Monitor het bedrijfsprofiel periodiek op wijzigingen")
	}

	return analysis
}

func ruleSummary(p *domain.CompanyProfile, scores domain.Scores) string {
	if p.Identity == nil || p.Identity.Name == "" {
		return fmt.Sprintf("Voor KVK-nummer %s is beperkte informatie beschikbaar. De totaalscore is %d/100.", p.KvkNumber, scores.Overall)
	}

	var b strings.Builder
	b.WriteString(p.Identity.Name)
	b.WriteString(" is een")
	if p.Identity.LegalForm != "" {
		b.WriteString(" " + p.Identity.LegalForm)
	} else {
		b.WriteString(" onderneming")
	}
	if p.Address != nil && p.Address.City != "" {
		b.WriteString(" uit " + p.Address.City)
	}
	if p.Identity.FoundedOn != nil {
		fmt.Fprintf(&b, ", opgericht in %d", p.Identity.FoundedOn.Year())
	}
	b.WriteString(".")

	primary := p.Identity.PrimarySbi()
	for _, c := range p.Identity.SbiCodes {
		if c.Code == primary && c.Description != "" {
			fmt.Fprintf(&b, " Hoofdactiviteit: %s.", strings.ToLower(c.Description))
			break
		}
	}

	if !p.Identity.Active {
		b.WriteString(" De onderneming staat als inactief geregistreerd.")
	}
	fmt.Fprintf(&b, " De totaalscore is %d/100 (groei %d, digitaal %d, reputatie %d).",
		scores.Overall, scores.Growth, scores.Digital, scores.Reputation)

	return b.String()
}
