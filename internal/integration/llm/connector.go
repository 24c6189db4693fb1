package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/integration/common"
	pkgRetry "github.com/futig/cpf-explainer/internal/pkg/retry"
	pkghttp "github.com/futig/cpf-explainer/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector calls an OpenAI-compatible chat completions endpoint.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("llm", cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate sends the system instructions and the user prompt (context + request)
// and returns the first completion's text.
func (c *Connector) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctxzap.Info(ctx, "generating explanation via LLM service", zap.String("model", c.config.Model))

	body := &entity.LLMChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    buildMessages(req),
		Temperature: c.config.Temperature,
	}

	resp, err := pkgRetry.Do(ctx, &c.config.Retry, func(ctx context.Context) (*entity.LLMChatCompletionResponse, error) {
		var out entity.LLMChatCompletionResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.Endpoint, body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices in completion response", entity.ErrGenerationFailed)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion text", entity.ErrGenerationFailed)
	}

	ctxzap.Info(ctx, "explanation generated successfully", zap.Int("result_length", len(text)))

	return text, nil
}

func buildMessages(req *entity.GenerationRequest) []entity.ChatMessage {
	var messages []entity.ChatMessage
	if req.System != "" {
		messages = append(messages, entity.ChatMessage{Role: "system", Content: req.System})
	}

	user := req.User
	if req.Context != "" {
		user = req.Context + "\n\n" + req.User
	}
	messages = append(messages, entity.ChatMessage{Role: "user", Content: user})

	return messages
}
