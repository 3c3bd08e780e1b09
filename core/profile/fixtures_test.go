package profile

import (
	"context"
	"time"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
)

const acmeKvk = "12345678"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func intPtr(v int) *int { return &v }

// healthySources returns sources where every call succeeds
func healthySources() Sources {
	return Sources{
		Registry: &mockRegistry{
			baseFunc: func(ctx context.Context, kvk string) (*domain.RegistryRecord, error) {
				return &domain.RegistryRecord{
					Identity: domain.Identity{
						KvkNumber: kvk,
						Name:      "Acme B.V.",
						LegalForm: "Besloten Vennootschap",
						FoundedOn: datePtr(2010, time.March, 1),
						Active:    true,
						SbiCodes:  []domain.SbiCode{{Code: "6201", Description: "Ontwikkelen van software", Primary: true}},
					},
					Address:  &domain.Address{Street: "Damrak", HouseNumber: "1", PostalCode: "1012LG", City: "Amsterdam"},
					Websites: []string{"https://acme.example"},
				}, nil
			},
			officersFunc: func(ctx context.Context, kvk string) ([]domain.Director, error) {
				return []domain.Director{
					{Name: "J. Jansen", Role: "Bestuurder", StartDate: datePtr(2010, time.March, 1), NaturalPerson: true},
					{Name: "P. de Vries", Role: "Bestuurder", StartDate: datePtr(2012, time.June, 1), EndDate: datePtr(2018, time.January, 15), NaturalPerson: true},
				}, nil
			},
			relationsFunc: func(ctx context.Context, kvk string) (*domain.Relations, error) {
				return &domain.Relations{
					Subsidiaries: []domain.RelatedEntity{{KvkNumber: "87654321", Name: "Acme Services B.V.", RelationType: domain.RelationSubsidiary, Confidence: 1}},
				}, nil
			},
		},
		LegalStatus: &mockLegal{legalFunc: func(ctx context.Context, kvk string) (*domain.LegalStatus, error) {
			return &domain.LegalStatus{Announcements: []domain.LegalEvent{}, Risk: domain.RiskLow}, nil
		}},
		Financial: &mockFinancial{indicatorsFunc: func(ctx context.Context, kvk string) (*domain.FinancialIndicators, error) {
			return &domain.FinancialIndicators{
				CreditScore:     intPtr(72),
				EmployeeHistory: []domain.EmployeeCount{{Year: 2021, Count: 10}, {Year: 2023, Count: 14}},
			}, nil
		}},
		Reviews: &mockReviews{reviewsFunc: func(ctx context.Context, name, city string) (*domain.Reviews, error) {
			r := &domain.Reviews{Platforms: []domain.PlatformRating{{Platform: "google", Rating: 4.4, Count: 25}}}
			r.Recompute()
			return r, nil
		}},
		News: &mockNews{newsFunc: func(ctx context.Context, name string) ([]domain.NewsItem, error) {
			return []domain.NewsItem{{Title: "Acme opent nieuw kantoor", Source: "NOS", PublishedAt: date(2024, time.May, 2), URL: "https://nos.example/1"}}, nil
		}},
		Web: &mockWeb{
			websiteFunc: func(ctx context.Context, site string) (*domain.WebPresence, error) {
				return &domain.WebPresence{Website: site, Email: "info@acme.example", Phone: "+31201234567"}, nil
			},
			socialsFunc: func(ctx context.Context, site string) (*domain.SocialProfiles, error) {
				return &domain.SocialProfiles{LinkedIn: "https://www.linkedin.com/company/acme"}, nil
			},
			techFunc: func(ctx context.Context, site string) (*domain.TechStack, error) {
				return &domain.TechStack{CMS: []string{"WordPress"}, Frameworks: []string{}, Analytics: []string{"Google Analytics"}, Payments: []string{}, Marketing: []string{}}, nil
			},
		},
		Narrative: &mockNarrative{generateFunc: func(ctx context.Context, in interfaces.NarrativeInput) (*interfaces.Narrative, error) {
			return &interfaces.Narrative{
				Summary:   "Acme B.V. is een gezond softwarebedrijf.",
				Strengths: []string{"Groei"},
			}, nil
		}},
	}
}

func newTestAggregator(sources Sources) (*Aggregator, *mockMetrics) {
	metrics := newMockMetrics()
	agg := NewAggregator(sources, interfaces.Dependencies{Metrics: metrics}, Options{
		SourceTimeout:    200 * time.Millisecond,
		NarrativeTimeout: 200 * time.Millisecond,
	})
	agg.now = func() time.Time { return date(2025, time.June, 1) }
	return agg, metrics
}
