// ABOUTME: Request DTO for the chat proxy endpoint
// ABOUTME: Only user and assistant turns are accepted; the system prompt is fixed server-side

package requests

import "kvk-insights-api/core/interfaces"

// ChatMessage is one turn of the conversation
type ChatMessage struct {
	Role    string `json:"role" enum:"user,assistant" doc:"Who wrote the message"`
	Content string `json:"content" minLength:"1" maxLength:"4000" doc:"Message text"`
}

// ChatRequest represents the request body for the chat proxy
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" minItems:"1" maxItems:"20" doc:"Conversation so far, oldest first"`
}

// ToMessages converts the request to completer messages
func (r *ChatRequest) ToMessages() []interfaces.ChatMessage {
	out := make([]interfaces.ChatMessage, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, interfaces.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
