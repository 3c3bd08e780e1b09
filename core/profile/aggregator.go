// ABOUTME: Profile aggregator fanning out to the registry and enrichment sources
// ABOUTME: Failures are recorded per section in meta.errors and never abort the profile

package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/pkg/featureflags"
)

const (
	// DefaultSourceTimeout bounds each fan-out call
	DefaultSourceTimeout = 8 * time.Second

	// DefaultNarrativeTimeout bounds the narrative generator
	DefaultNarrativeTimeout = 20 * time.Second

	keyAbout = "about"
)

var (
	errNoWebsite = errors.New("no website known for company")
	errNoName    = errors.New("company name unknown")
)

// Sources are the upstream collaborators. Any of them except Registry may be
// nil; requested sections backed by a nil source are reported as errors.
type Sources struct {
	Registry    interfaces.RegistrySource
	LegalStatus interfaces.LegalStatusSource
	Financial   interfaces.FinancialSource
	Reviews     interfaces.ReviewSource
	News        interfaces.NewsSource
	Web         interfaces.WebEnricher
	Narrative   interfaces.NarrativeGenerator
}

// Options tune the aggregator's timeouts
type Options struct {
	SourceTimeout    time.Duration
	NarrativeTimeout time.Duration
}

// Aggregator builds composite company profiles
type Aggregator struct {
	sources Sources
	deps    interfaces.Dependencies
	opts    Options
	now     func() time.Time
}

// NewAggregator creates an aggregator. Zero timeouts take the defaults.
func NewAggregator(sources Sources, deps interfaces.Dependencies, opts Options) *Aggregator {
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = DefaultSourceTimeout
	}
	if opts.NarrativeTimeout <= 0 {
		opts.NarrativeTimeout = DefaultNarrativeTimeout
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	return &Aggregator{
		sources: sources,
		deps:    deps,
		opts:    opts,
		now:     time.Now,
	}
}

// Aggregate returns the profile for kvkNumber. It fails only for invalid
// input, an unknown registration number or a cancelled request; every other
// problem is reported in Meta.Errors.
func (a *Aggregator) Aggregate(ctx context.Context, kvkNumber string, include domain.Include, enrichments domain.Enrichments) (*domain.CompanyProfile, error) {
	start := a.now()

	kvkNumber = domain.NormalizeKvkNumber(kvkNumber)
	if !domain.IsValidKvkNumber(kvkNumber) {
		return nil, &coreerrors.ValidationError{Field: "kvkNummer", Message: "registration number must be exactly 8 digits"}
	}
	if a.sources.Registry == nil {
		return nil, errors.New("registry source not configured")
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	profile := &domain.CompanyProfile{KvkNumber: kvkNumber}
	out := newOutcomes()

	websites, baseErr := a.registryStage(ctx, cancel, profile, out, include)
	if baseErr != nil {
		return nil, baseErr
	}

	site := firstWebsite(websites)
	a.enrichmentStage(ctx, profile, out, enrichments, site)

	profile.Timeline = BuildTimeline(profile)

	keys := append([]string{domain.KeyBaseProfile}, include.Keys()...)
	keys = append(keys, enrichments.Keys()...)

	if enrichments.AIAnalysis {
		a.analysisStage(ctx, profile, out, keys, site)
	}

	if err := parent.Err(); err != nil {
		return nil, err
	}

	profile.Meta.Sources, profile.Meta.Errors = out.report(keys)
	profile.Meta.GeneratedAt = a.now().UTC()
	profile.Meta.ProcessingTimeMs = a.now().Sub(start).Milliseconds()

	a.deps.Metrics.Inc("profile.aggregated")
	a.deps.Logger.Info("Profile aggregated", map[string]interface{}{
		"kvk_number":  kvkNumber,
		"sources":     len(profile.Meta.Sources),
		"errors":      len(profile.Meta.Errors),
		"duration_ms": profile.Meta.ProcessingTimeMs,
	})

	return profile, nil
}

// registryStage fetches the base profile alongside every section that only
// needs the registration number. A NotFound base profile cancels the rest.
func (a *Aggregator) registryStage(ctx context.Context, cancel context.CancelFunc, profile *domain.CompanyProfile,
	out *outcomes, include domain.Include) ([]string, error) {
	kvkNumber := profile.KvkNumber
	timeout := a.opts.SourceTimeout

	var (
		wg        sync.WaitGroup
		websites  []string
		baseErr   error
		providers *domain.FinancialIndicators
	)
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() {
		rec, err := call(ctx, a, domain.KeyBaseProfile, timeout, func(ctx context.Context) (*domain.RegistryRecord, error) {
			return a.sources.Registry.BaseProfile(ctx, kvkNumber)
		})
		if err == nil && rec == nil {
			err = &coreerrors.NotFoundError{Resource: "company", ID: kvkNumber}
		}
		if coreerrors.IsNotFound(err) {
			baseErr = err
			cancel()
			return
		}
		out.record(domain.KeyBaseProfile, err)
		if err != nil {
			return
		}
		identity := rec.Identity
		if identity.KvkNumber == "" {
			identity.KvkNumber = kvkNumber
		}
		profile.Identity = &identity
		profile.Address = rec.Address
		websites = rec.Websites
	})

	if include.Directors {
		run(func() {
			directors, err := call(ctx, a, domain.KeyDirectors, timeout, func(ctx context.Context) ([]domain.Director, error) {
				return a.sources.Registry.Officers(ctx, kvkNumber)
			})
			out.record(domain.KeyDirectors, err)
			if err == nil {
				if directors == nil {
					directors = []domain.Director{}
				}
				profile.Directors = directors
			}
		})
	}

	if include.Relations {
		run(func() {
			relations, err := call(ctx, a, domain.KeyRelations, timeout, func(ctx context.Context) (*domain.Relations, error) {
				return a.sources.Registry.Relations(ctx, kvkNumber)
			})
			if err == nil && relations == nil {
				relations = &domain.Relations{}
			}
			out.record(domain.KeyRelations, err)
			if err == nil {
				if relations.Subsidiaries == nil {
					relations.Subsidiaries = []domain.RelatedEntity{}
				}
				if relations.Related == nil {
					relations.Related = []domain.RelatedEntity{}
				}
				profile.Relations = relations
			}
		})
	}

	if include.LegalStatus {
		if a.sources.LegalStatus == nil {
			out.record(domain.KeyLegalStatus, errNotConfigured)
		} else {
			run(func() {
				status, err := call(ctx, a, domain.KeyLegalStatus, timeout, func(ctx context.Context) (*domain.LegalStatus, error) {
					return a.sources.LegalStatus.LegalStatus(ctx, kvkNumber)
				})
				if err == nil && status == nil {
					status = &domain.LegalStatus{}
				}
				out.record(domain.KeyLegalStatus, err)
				if err == nil {
					if status.Announcements == nil {
						status.Announcements = []domain.LegalEvent{}
					}
					if status.Risk == "" {
						status.Risk = status.DeriveRisk()
					}
					profile.LegalStatus = status
				}
			})
		}
	}

	financialFailed := false
	if include.Financial && a.sources.Financial != nil {
		run(func() {
			ind, err := call(ctx, a, domain.KeyFinancial, timeout, func(ctx context.Context) (*domain.FinancialIndicators, error) {
				return a.sources.Financial.Indicators(ctx, kvkNumber)
			})
			out.record(domain.KeyFinancial, err)
			if err != nil {
				financialFailed = true
				return
			}
			providers = ind
		})
	}

	wg.Wait()

	if baseErr != nil {
		return nil, baseErr
	}

	if include.Financial && !financialFailed {
		switch {
		case a.sources.Financial != nil:
			profile.Financial = enrichFinancial(providers, profile.Identity, a.now())
		case profile.Identity != nil:
			profile.Financial = enrichFinancial(nil, profile.Identity, a.now())
			out.record(domain.KeyFinancial, nil)
		default:
			out.record(domain.KeyFinancial, errNotConfigured)
		}
	}

	return websites, nil
}

// enrichmentStage runs the sections that need the company name or website
func (a *Aggregator) enrichmentStage(ctx context.Context, profile *domain.CompanyProfile, out *outcomes,
	enrichments domain.Enrichments, site string) {
	timeout := a.opts.SourceTimeout

	name, city := "", ""
	if profile.Identity != nil {
		name = profile.Identity.Name
	}
	if profile.Address != nil {
		city = profile.Address.City
	}

	var (
		wg       sync.WaitGroup
		presence *domain.WebPresence
		socials  *domain.SocialProfiles
		tech     *domain.TechStack
	)
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	// webPrecondition returns the error recorded instead of calling the enricher
	webPrecondition := func() error {
		switch {
		case a.sources.Web == nil:
			return errNotConfigured
		case site == "":
			return errNoWebsite
		}
		return nil
	}

	if enrichments.Website {
		if err := webPrecondition(); err != nil {
			out.record(domain.KeyWebsite, err)
		} else {
			run(func() {
				p, err := call(ctx, a, domain.KeyWebsite, timeout, func(ctx context.Context) (*domain.WebPresence, error) {
					return a.sources.Web.Website(ctx, site)
				})
				out.record(domain.KeyWebsite, err)
				if err == nil {
					presence = p
				}
			})
		}
	}

	if enrichments.Socials {
		if err := webPrecondition(); err != nil {
			out.record(domain.KeySocials, err)
		} else {
			run(func() {
				s, err := call(ctx, a, domain.KeySocials, timeout, func(ctx context.Context) (*domain.SocialProfiles, error) {
					return a.sources.Web.Socials(ctx, site)
				})
				out.record(domain.KeySocials, err)
				if err == nil {
					if s == nil {
						s = &domain.SocialProfiles{}
					}
					socials = s
				}
			})
		}
	}

	if enrichments.TechStack {
		if !featureflags.IsEnabled(ctx, featureflags.TechStack) {
			out.record(domain.KeyTechStack, errDisabled)
		} else if err := webPrecondition(); err != nil {
			out.record(domain.KeyTechStack, err)
		} else {
			run(func() {
				t, err := call(ctx, a, domain.KeyTechStack, timeout, func(ctx context.Context) (*domain.TechStack, error) {
					return a.sources.Web.TechStack(ctx, site)
				})
				out.record(domain.KeyTechStack, err)
				if err == nil {
					if t == nil {
						t = &domain.TechStack{}
					}
					tech = t
				}
			})
		}
	}

	if enrichments.News {
		switch {
		case a.sources.News == nil:
			out.record(domain.KeyNews, errNotConfigured)
		case name == "":
			out.record(domain.KeyNews, errNoName)
		default:
			run(func() {
				items, err := call(ctx, a, domain.KeyNews, timeout, func(ctx context.Context) ([]domain.NewsItem, error) {
					return a.sources.News.News(ctx, name)
				})
				out.record(domain.KeyNews, err)
				if err == nil {
					if items == nil {
						items = []domain.NewsItem{}
					}
					profile.News = items
				}
			})
		}
	}

	if enrichments.Reviews {
		switch {
		case a.sources.Reviews == nil:
			out.record(domain.KeyReviews, errNotConfigured)
		case name == "":
			out.record(domain.KeyReviews, errNoName)
		default:
			run(func() {
				r, err := call(ctx, a, domain.KeyReviews, timeout, func(ctx context.Context) (*domain.Reviews, error) {
					return a.sources.Reviews.Reviews(ctx, name, city)
				})
				if err == nil && r == nil {
					r = &domain.Reviews{}
				}
				out.record(domain.KeyReviews, err)
				if err == nil {
					if r.Platforms == nil {
						r.Platforms = []domain.PlatformRating{}
					}
					profile.Reviews = r
				}
			})
		}
	}

	wg.Wait()

	profile.WebPresence = composeWebPresence(site, presence, socials, tech)
}

// analysisStage computes the scores and the narrative once every other
// section has settled. The analysis is always present when requested; only
// a generated narrative counts as a successful aiAnalysis source.
func (a *Aggregator) analysisStage(ctx context.Context, profile *domain.CompanyProfile, out *outcomes, keys []string, site string) {
	scores := ComputeScores(profile)
	confidence := baseConfidence(keys, out)

	var err error
	switch {
	case !featureflags.IsEnabled(ctx, featureflags.AIAnalysis):
		err = errDisabled
	case a.sources.Narrative == nil:
		err = errNotConfigured
	default:
		var narrative *interfaces.Narrative
		narrative, err = a.generateNarrative(ctx, profile, out, keys, scores, site)
		if err == nil {
			profile.Analysis = &domain.Analysis{
				Summary:         narrative.Summary,
				Strengths:       nonNil(narrative.Strengths),
				Concerns:        nonNil(narrative.Concerns),
				Recommendations: nonNil(narrative.Recommendations),
				Scores:          scores,
				Confidence:      confidence,
				Origin:          domain.NarrativeGenerated,
			}
			out.record(domain.KeyAIAnalysis, nil)
			return
		}
	}

	analysis := RuleNarrative(profile, scores)
	analysis.Confidence = degradedConfidence(confidence)
	profile.Analysis = analysis
	out.record(domain.KeyAIAnalysis, err)
}

// generateNarrative calls the generator with a snapshot of the profile so an
// abandoned call never observes later writes
func (a *Aggregator) generateNarrative(ctx context.Context, profile *domain.CompanyProfile, out *outcomes,
	keys []string, scores domain.Scores, site string) (*interfaces.Narrative, error) {
	about := ""
	if a.sources.Web != nil && site != "" {
		about, _ = call(ctx, a, keyAbout, a.opts.SourceTimeout, func(ctx context.Context) (string, error) {
			return a.sources.Web.AboutText(ctx, site)
		})
	}

	snapshot := *profile
	pending := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != domain.KeyAIAnalysis {
			pending = append(pending, k)
		}
	}
	_, snapshot.Meta.Errors = out.report(pending)

	narrative, err := call(ctx, a, domain.KeyAIAnalysis, a.opts.NarrativeTimeout, func(ctx context.Context) (*interfaces.Narrative, error) {
		return a.sources.Narrative.Generate(ctx, interfaces.NarrativeInput{
			Profile:   &snapshot,
			Scores:    scores,
			AboutText: about,
		})
	})
	if err == nil && (narrative == nil || narrative.Summary == "") {
		err = errors.New("empty narrative")
	}
	return narrative, err
}

// composeWebPresence merges the three website-derived sections. It returns
// nil when none of them produced data.
func composeWebPresence(site string, presence *domain.WebPresence, socials *domain.SocialProfiles, tech *domain.TechStack) *domain.WebPresence {
	if presence == nil && socials == nil && tech == nil {
		return nil
	}
	if presence == nil {
		presence = &domain.WebPresence{Website: site}
	} else {
		copied := *presence
		presence = &copied
	}
	presence.Socials = socials
	presence.TechStack = tech
	return presence
}

func firstWebsite(websites []string) string {
	for _, w := range websites {
		if w != "" {
			return w
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type nopMetrics struct{}

func (nopMetrics) RecordSource(string, time.Duration, error) {}
func (nopMetrics) Inc(string)                                {}
