package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/phdonas/site/config"

	openai "github.com/sashabaranov/go-openai"
)

// ApologyMessage is the fixed user-facing reply for any assistant failure.
// It invites the visitor to retry or use the direct WhatsApp channel instead
// of surfacing a raw error.
const ApologyMessage = "Desculpe, tive um problema ao processar sua pergunta. Tente novamente em instantes."

// AssistantService is the bridge to the generative-text API behind the site's
// chatbot widget.
type AssistantService interface {
	// Ask sends the visitor's prompt together with the fixed persona
	// instruction and returns the reply text. Calls are stateless across
	// turns: no conversation history is sent to the API. Ask never fails;
	// every error collapses into ApologyMessage.
	Ask(ctx context.Context, prompt string) string
}

// completionClient is the slice of the OpenAI-compatible client the assistant
// needs; tests substitute a failing implementation.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type assistantService struct {
	client       completionClient
	model        string
	instructions string
}

// NewAssistantService creates the assistant bridge from the application
// config. The completion API is OpenAI-compatible; for Gemini the base URL
// points at the compatibility endpoint.
func NewAssistantService() AssistantService {
	clientConfig := openai.DefaultConfig(config.AppConfig.LLM.APIKey)
	if config.AppConfig.LLM.BaseURL != "" {
		clientConfig.BaseURL = config.AppConfig.LLM.BaseURL
	}

	return &assistantService{
		client:       openai.NewClientWithConfig(clientConfig),
		model:        config.AppConfig.LLM.Model,
		instructions: config.AppConfig.AssistantInstructions,
	}
}

// newAssistantServiceWithClient wires an explicit completion client; used by tests.
func newAssistantServiceWithClient(client completionClient, model string, instructions string) AssistantService {
	return &assistantService{
		client:       client,
		model:        model,
		instructions: instructions,
	}
}

func (s *assistantService) Ask(ctx context.Context, prompt string) string {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: s.instructions},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		log.Printf("ERROR: [AssistantService] Completion request failed: %v", err)
		return ApologyMessage
	}

	reply, err := extractReply(resp)
	if err != nil {
		log.Printf("ERROR: [AssistantService] Malformed completion response: %v", err)
		return ApologyMessage
	}
	return reply
}

// extractReply pulls the plain-text reply out of a completion response.
func extractReply(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errors.New("response contains no choices")
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("response content is empty")
	}
	return reply, nil
}
