// ABOUTME: Response DTOs for chat, health and metrics endpoints
// ABOUTME: Kept flat; none of these wrap domain models

package responses

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// HealthResponse reports liveness and enabled features
type HealthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version"`
	Flags   map[string]bool `json:"flags"`
}
