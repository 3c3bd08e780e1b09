// ABOUTME: Chat proxy handler forwarding the site chatbot to the hosted chat model
// ABOUTME: Gated by the chat_proxy feature flag; the system prompt is fixed here

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kvk-insights-api/api/dto/requests"
	"kvk-insights-api/api/dto/responses"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/pkg/featureflags"
)

const chatSystemPrompt = `Je bent de assistent op de website van een automatiseringsbureau.
Beantwoord vragen over automatisering, procesoptimalisatie en de bedrijfsinformatie- en salaristools op de site.
Antwoord kort en in de taal van de gebruiker. Verzin geen prijzen of toezeggingen; verwijs daarvoor naar het contactformulier.`

// ChatHandler proxies chat conversations
type ChatHandler struct {
	completer interfaces.ChatCompleter
}

// NewChatHandler creates a new chat handler
func NewChatHandler(completer interfaces.ChatCompleter) *ChatHandler {
	return &ChatHandler{completer: completer}
}

// RegisterRoutes registers the chat route
func (h *ChatHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/chat",
		Summary:     "Chat with the site assistant",
		Tags:        []string{"Chat"},
	}, h.Chat)
}

// ChatInput defines the input for the Chat operation
type ChatInput struct {
	Body requests.ChatRequest
}

// ChatOutput defines the output for the Chat operation
type ChatOutput struct {
	Body responses.ChatResponse
}

// Chat handles the POST /chat endpoint
func (h *ChatHandler) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.ChatProxy) {
		return nil, huma.Error404NotFound("Chat is disabled")
	}
	if h.completer == nil {
		return nil, huma.Error503ServiceUnavailable("Chat model is not configured")
	}

	messages := append([]interfaces.ChatMessage{{Role: "system", Content: chatSystemPrompt}}, input.Body.ToMessages()...)
	reply, err := h.completer.Complete(ctx, messages)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ChatOutput{Body: responses.ChatResponse{Reply: reply}}, nil
}
