// ABOUTME: Prompt construction for the analysis narrative
// ABOUTME: Sends a compact fact sheet instead of the full profile document

package narrative

import (
	"encoding/json"
	"fmt"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
	htmlutil "kvk-insights-api/pkg/utils/html"
)

const maxAboutText = 1500

const systemPrompt = `Je bent een bedrijfsanalist die Nederlandse ondernemingen beoordeelt op basis van openbare gegevens.
Antwoord uitsluitend met een JSON-object met de velden:
"samenvatting" (string, maximaal 4 zinnen),
"sterktes" (array van korte strings),
"aandachtspunten" (array van korte strings),
"aanbevelingen" (array van korte strings).
Gebruik alleen de aangeleverde feiten. Verzin geen cijfers.`

type factSheet struct {
	Name         string          `json:"naam"`
	LegalForm    string          `json:"rechtsvorm,omitempty"`
	City         string          `json:"plaats,omitempty"`
	Founded      string          `json:"opgericht,omitempty"`
	Employees    string          `json:"werknemers,omitempty"`
	Activity     string          `json:"activiteit,omitempty"`
	Directors    int             `json:"aantalBestuurders"`
	Subsidiaries int             `json:"aantalDochters"`
	LegalRisk    domain.RiskTier `json:"juridischRisico,omitempty"`
	LegalEvents  []string        `json:"juridischeGebeurtenissen,omitempty"`
	Financial    *financialFacts `json:"financieel,omitempty"`
	Website      string          `json:"website,omitempty"`
	Socials      int             `json:"aantalSocials"`
	Rating       float64         `json:"reviewScore,omitempty"`
	ReviewCount  int             `json:"aantalReviews,omitempty"`
	Headlines    []string        `json:"nieuwskoppen,omitempty"`
	Scores       domain.Scores   `json:"scores"`
	About        string          `json:"overOns,omitempty"`
	Unavailable  []string        `json:"ontbrekendeBronnen,omitempty"`
}

type financialFacts struct {
	CreditScore *int                 `json:"kredietscore,omitempty"`
	Risk        domain.RiskTier      `json:"risico,omitempty"`
	Trend       domain.EmployeeTrend `json:"werknemerstrend,omitempty"`
	AgeYears    *int                 `json:"leeftijd,omitempty"`
}

func buildPrompt(input interfaces.NarrativeInput) (string, error) {
	p := input.Profile
	if p == nil {
		return "", fmt.Errorf("llm: no profile to describe")
	}

	fs := factSheet{
		Scores:      input.Scores,
		About:       htmlutil.Truncate(input.AboutText, maxAboutText),
		Directors:   len(p.Directors),
		Unavailable: p.Meta.Errors,
	}
	if id := p.Identity; id != nil {
		fs.Name = id.Name
		fs.LegalForm = id.LegalForm
		fs.Employees = id.EmployeeBucket
		if id.FoundedOn != nil {
			fs.Founded = id.FoundedOn.Format("2006-01-02")
		}
		primary := id.PrimarySbi()
		for _, sbi := range id.SbiCodes {
			if sbi.Code == primary {
				fs.Activity = sbi.Description
				break
			}
		}
	}
	if p.Address != nil {
		fs.City = p.Address.City
	}
	if p.Relations != nil {
		fs.Subsidiaries = len(p.Relations.Subsidiaries)
	}
	if ls := p.LegalStatus; ls != nil {
		fs.LegalRisk = ls.Risk
		for _, ev := range []*domain.LegalEvent{ls.Bankruptcy, ls.Suspension, ls.Dissolution} {
			if ev != nil {
				fs.LegalEvents = append(fs.LegalEvents, fmt.Sprintf("%s (%s)", ev.Type, ev.Date.Format("2006-01-02")))
			}
		}
	}
	if f := p.Financial; f != nil {
		fs.Financial = &financialFacts{CreditScore: f.CreditScore, Risk: f.Risk, Trend: f.EmployeeTrend, AgeYears: f.CompanyAgeYears}
	}
	if w := p.WebPresence; w != nil {
		fs.Website = w.Website
		fs.Socials = w.Socials.Count()
	}
	if r := p.Reviews; r != nil {
		fs.Rating = r.AverageRating
		fs.ReviewCount = r.TotalCount
	}
	for i, n := range p.News {
		if i == 5 {
			break
		}
		fs.Headlines = append(fs.Headlines, n.Title)
	}

	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("llm: encode fact sheet: %w", err)
	}
	return "Beoordeel dit bedrijf op basis van de volgende gegevens:\n" + string(data), nil
}
