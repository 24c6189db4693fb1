package handlers

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/validator"
	"github.com/futig/cpf-explainer/internal/telegram/keyboard"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Command      string
	Args         string
	CallbackData string
	CallbackID   string
}

// Sender is the part of the Bot API the handlers use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type ExplainerUsecase interface {
	AnswerPolicyQuestion(ctx context.Context, question string, profile entity.UserProfile) (*entity.Explanation, error)
}

type SimulationUsecase interface {
	Simulate(ctx context.Context, inputs entity.RetirementInputs) (*entity.SimulationRun, error)
	Explain(ctx context.Context, run *entity.SimulationRun) (*entity.Explanation, error)
	Get(ctx context.Context, id string) (*entity.SimulationRun, error)
	Report(ctx context.Context, id string, format entity.ResultFormat, explanation string) (*entity.ReportFile, error)
	Presets() []entity.Preset
	Preset(n int) (entity.Preset, error)
}

// Handler serves commands, plain text and button clicks
type Handler struct {
	api           Sender
	messageSender *MessageSender
	explainerUC   ExplainerUsecase
	simulationUC  SimulationUsecase
	validator     *validator.Validator
	keyboard      *keyboard.Builder
	logger        *zap.Logger
}

func NewHandler(
	api Sender,
	explainerUC ExplainerUsecase,
	simulationUC SimulationUsecase,
	v *validator.Validator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		api:           api,
		messageSender: NewMessageSender(api, logger),
		explainerUC:   explainerUC,
		simulationUC:  simulationUC,
		validator:     v,
		keyboard:      keyboard.NewBuilder(),
		logger:        logger,
	}
}

// sendMessage is a convenience wrapper for messageSender.Send
func (h *Handler) sendMessage(chatID int64, text string, markup interface{}) {
	_ = h.messageSender.Send(chatID, text, markup)
}
