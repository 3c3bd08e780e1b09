package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kvk-insights-api/core/domain"
)

func TestRuleNarrative_HealthyCompany(t *testing.T) {
	p := baselineProfile()
	p.Identity.LegalForm = "Besloten Vennootschap"
	p.Identity.FoundedOn = datePtr(2012, time.April, 1)
	p.Address = &domain.Address{City: "Utrecht"}
	p.Financial.CompanyAgeYears = intPtr(13)

	a := RuleNarrative(p, ComputeScores(p))

	assert.Equal(t, domain.NarrativeRules, a.Origin)
	assert.Contains(t, a.Summary, "Acme B.V. is een Besloten Vennootschap uit Utrecht, opgericht in 2012.")
	assert.Contains(t, a.Strengths, "Gevestigd bedrijf met 13 jaar ervaring")
	assert.Contains(t, a.Strengths, "Geen insolventie- of ontbindingsregistraties")
	assert.NotNil(t, a.Concerns)
	assert.NotEmpty(t, a.Recommendations)
}

func TestRuleNarrative_Bankruptcy(t *testing.T) {
	p := baselineProfile()
	p.LegalStatus.Bankruptcy = &domain.LegalEvent{Type: domain.LegalBankruptcy, Date: date(2024, time.February, 1)}

	a := RuleNarrative(p, ComputeScores(p))

	assert.Contains(t, a.Concerns, "Faillissement geregistreerd op 01-02-2024")
	assert.Contains(t, a.Recommendations, "Vraag zekerheden of vooruitbetaling bij nieuwe opdrachten")
	assert.NotContains(t, a.Strengths, "Geen insolventie- of ontbindingsregistraties")
}

func TestRuleNarrative_UnknownCompany(t *testing.T) {
	p := &domain.CompanyProfile{KvkNumber: acmeKvk}

	a := RuleNarrative(p, ComputeScores(p))

	assert.Contains(t, a.Summary, "Voor KVK-nummer 12345678 is beperkte informatie beschikbaar")
	assert.Equal(t, []string{}, a.Strengths)
}

func TestConfidence(t *testing.T) {
	out := newOutcomes()
	keys := []string{domain.KeyBaseProfile, domain.KeyDirectors, domain.KeyNews, domain.KeyAIAnalysis}

	assert.Equal(t, 30, baseConfidence(keys, out))

	out.record(domain.KeyBaseProfile, nil)
	out.record(domain.KeyDirectors, nil)
	out.record(domain.KeyNews, errUpstream)
	assert.Equal(t, 77, baseConfidence(keys, out))

	assert.Equal(t, 52, degradedConfidence(77))
	assert.Equal(t, 5, degradedConfidence(20))
}
