package telegram

import (
	"context"
	"fmt"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/pkg/validator"
	"github.com/futig/cpf-explainer/internal/telegram/bot"
	"github.com/futig/cpf-explainer/internal/telegram/handlers"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	explainerUC handlers.ExplainerUsecase,
	simulationUC handlers.SimulationUsecase,
	v *validator.Validator,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	handler := handlers.NewHandler(api, explainerUC, simulationUC, v, logger)
	b := bot.New(cfg, api, handler, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
