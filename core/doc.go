// Package core contains the business logic of the KVK Insights service.
// It does not depend on the HTTP layer and can be used on its own through
// the kvkinsights package.
//
// The core package is organized into several sub-packages:
//
//   - domain: company, profile, query, parked query and salary models
//   - resolver: validates search queries and returns candidates or a profile
//   - profile: fans out to the registry and enrichment sources, then scores,
//     builds the timeline and writes the analysis
//   - services: website crawl, tech detection, brand colour and about text
//   - unlock: parks queries during payment and replays them once
//   - salary: Dutch income tax brackets, credits and scenarios
//   - errors: validation, not-found and source-unavailable errors
//   - interfaces: contracts for sources, cache, HTTP, logger and metrics
//
// # Design Principles
//
// External dependencies are injected through interfaces.Dependencies and
// the source interfaces, so every service is testable with function-field
// mocks.
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	}
//
//	aggregator := profile.NewAggregator(profile.Sources{Registry: registry}, deps, profile.Options{})
//	res := resolver.NewService(registry, aggregator, deps)
//
//	resolution, err := res.Resolve(ctx, domain.SearchQuery{
//	    Type:        domain.SearchByRegistrationNumber,
//	    Text:        "12345678",
//	    FullProfile: true,
//	    Include:     domain.AllSections(),
//	    Enrichments: domain.AllEnrichments(),
//	})
package core
