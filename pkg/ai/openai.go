package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

// Service wraps the completions API used to synthesize insight text. One
// pipeline run makes exactly one completion call.
type Service struct {
	client *openai.Client
	logger *log.Logger
	model  string
}

func NewOpenAIService(logger *log.Logger, apiKey string, baseUrl string, model string) *Service {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseUrl),
	)
	return &Service{
		client: &client,
		logger: logger,
		model:  model,
	}
}

// GenerateInsight sends the prompt and returns the generated text. An empty
// completion is reported as an error so the caller can treat it as a soft
// "nothing generated" outcome.
func (s *Service) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       s.model,
		Temperature: param.Opt[float64]{Value: 1.0},
	})
	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no completion choices")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("OpenAI returned an empty completion")
	}

	s.logger.Debug("Generated completion", "model", s.model, "length", len(text))
	return text, nil
}
