// Package api provides the HTTP API layer for the KVK Insights service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and a typed handler interface.
//
// # Layout
//
//   - server.go: Huma API configuration and middleware chain
//   - handlers/: HTTP request handlers
//   - dto/: request and response shapes plus mappers from core types
//   - middleware/: request IDs and logging, rate limiting, feature flags
//
// # Endpoints
//
//	POST /kvk/search                  candidates or a full profile
//	POST /kvk/pending                 park a query while the user pays
//	POST /kvk/pending/{token}/replay  replay a parked query once
//	POST /salary/calculate            Dutch net salary breakdown
//	POST /chat                        site assistant (flag chat_proxy)
//	GET  /healthz, /metrics           liveness and upstream counters
//
// The OpenAPI document is served at /openapi.json and the interactive
// docs at /docs.
//
// # Errors
//
// Errors use the RFC 7807 shape produced by Huma. Invalid input maps to
// 400, unknown companies or expired tokens to 404, an unreachable company
// registry to 503.
package api
