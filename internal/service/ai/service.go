package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"codecraftgo/internal/logger"
	"codecraftgo/internal/models"
)

// promptTemplate is the fixed instruction sent with every generation. It is
// constant per call; learning mode is described here rather than toggled in.
const promptTemplate = `You are CodeCraft AI — an intelligent assistant that generates clean, educational Python code snippets.
Your tasks:
1. Interpret the developer's natural language request, considering the conversation history.
2. Generate correct, well-formatted Python code inside a Markdown block.
3. Add short and clear explanations.
4. Optionally, include inline comments if the "learning mode" is active.
5. Your entire response should be a single Markdown-formatted text.`

// Service streams code generations from the Gemini chat model.
type Service struct {
	chatModel model.BaseChatModel
	log       *logger.Logger
}

// NewService builds the genai client and wraps it in an eino chat model. The
// client is constructed once and shared by all in-flight requests.
func NewService(ctx context.Context, apiKey, modelName string, log *logger.Logger) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}
	return &Service{chatModel: chatModel, log: log}, nil
}

// StreamGenerate opens one streaming generation and forwards each text delta
// to emit in receipt order. Model-side failures are degraded to a single
// in-band text chunk followed by a normal end of stream; only emit failures
// and cancellation propagate as errors.
func (s *Service) StreamGenerate(ctx context.Context, prompt string, learningMode bool, history []models.ChatMessage, emit func(chunk string) error) error {
	messages := buildMessages(prompt, history)
	s.log.Debug("starting generation stream", "history_turns", len(messages)-1, "learning_mode", learningMode)

	streamReader, err := s.chatModel.Stream(ctx, messages)
	if err != nil {
		return s.emitFailure(emit, err)
	}
	defer streamReader.Close()

	for {
		chunk, err := streamReader.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return s.emitFailure(emit, err)
		}
		if chunk.Content == "" {
			continue
		}
		if err := emit(chunk.Content); err != nil {
			return err
		}
	}
}

// emitFailure reports a model-side error as stream content. The caller sees
// an ordinary final chunk, not a transport error.
func (s *Service) emitFailure(emit func(string) error, cause error) error {
	s.log.Error("gemini stream failed", "error", cause)
	if err := emit(fmt.Sprintf("Error calling Gemini API: %v", cause)); err != nil {
		return err
	}
	return nil
}

// buildMessages converts the client-supplied history into model turns and
// appends the assembled prompt as the new user turn. History entries without
// text contribute no turn; "ai" maps to the assistant role and any other
// sender to the user role.
func buildMessages(prompt string, history []models.ChatMessage) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+1)
	for _, msg := range history {
		if msg.Text == "" {
			continue
		}
		role := schema.User
		if msg.Sender == models.SenderAI {
			role = schema.Assistant
		}
		messages = append(messages, &schema.Message{Role: role, Content: msg.Text})
	}
	messages = append(messages, &schema.Message{
		Role:    schema.User,
		Content: fmt.Sprintf("%s\n\nUser: %s", promptTemplate, prompt),
	})
	return messages
}
