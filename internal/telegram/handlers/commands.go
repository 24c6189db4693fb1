package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot commands
const (
	CommandStart    = "start"
	CommandHelp     = "help"
	CommandAsk      = "ask"
	CommandSimulate = "simulate"
	CommandPresets  = "presets"
	CommandPreset   = "preset"
)

// HandleMessage routes a command, or treats plain text as a policy question
func (h *Handler) HandleMessage(ctx context.Context, msg *Message) {
	if msg.Command == "" {
		if strings.TrimSpace(msg.Text) == "" {
			h.sendMessage(msg.ChatID, render.MsgTextHint, nil)
			return
		}
		h.handleAsk(ctx, msg.ChatID, msg.Text)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("command", msg.Command))
	ctxzap.Info(ctx, "command received", zap.Int64("user_id", msg.UserID))

	switch msg.Command {
	case CommandStart:
		h.sendMessage(msg.ChatID, render.MsgWelcome, nil)
	case CommandHelp:
		h.sendMessage(msg.ChatID, render.MsgHelp, nil)
	case CommandAsk:
		h.handleAsk(ctx, msg.ChatID, msg.Args)
	case CommandSimulate:
		h.handleSimulate(ctx, msg.ChatID, msg.Args)
	case CommandPresets:
		h.handlePresets(msg.ChatID)
	case CommandPreset:
		h.handlePreset(ctx, msg.ChatID, msg.Args)
	default:
		h.sendMessage(msg.ChatID, render.MsgUnknownCommand, nil)
	}
}

func (h *Handler) handleAsk(ctx context.Context, chatID int64, question string) {
	req := &entity.PolicyQuestionRequest{Question: question}
	if err := h.validator.ValidateQuestion(req); err != nil {
		if errors.Is(err, entity.ErrMissingField) {
			h.sendMessage(chatID, render.MsgAskUsage, nil)
			return
		}
		ctxzap.Warn(ctx, "question rejected", zap.Error(err))
		h.sendMessage(chatID, render.InvalidQuestion(err.Error()), nil)
		return
	}

	typing := NewTypingNotifier(h.api, chatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	explanation, err := h.explainerUC.AnswerPolicyQuestion(ctx, req.Question, req.Profile)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}

	h.sendMessage(chatID, render.Explanation(explanation), nil)
}

func (h *Handler) handleSimulate(ctx context.Context, chatID int64, args string) {
	inputs, err := ParseSimulateArgs(args)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}
	h.simulate(ctx, chatID, inputs)
}

func (h *Handler) handlePresets(chatID int64) {
	presets := h.simulationUC.Presets()
	if len(presets) == 0 {
		h.sendMessage(chatID, render.MsgNoPresets, nil)
		return
	}
	h.sendMessage(chatID, render.Presets(presets), h.keyboard.PresetsKeyboard(presets))
}

func (h *Handler) handlePreset(ctx context.Context, chatID int64, args string) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		h.sendMessage(chatID, render.MsgPresetUsage, nil)
		return
	}
	h.runPreset(ctx, chatID, n)
}

func (h *Handler) runPreset(ctx context.Context, chatID int64, n int) {
	preset, err := h.simulationUC.Preset(n)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}
	ctx = logger.AddFields(ctx, zap.String("preset", preset.Name))
	h.simulate(ctx, chatID, preset.Inputs)
}

func (h *Handler) simulate(ctx context.Context, chatID int64, inputs entity.RetirementInputs) {
	run, err := h.simulationUC.Simulate(ctx, inputs)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}
	h.sendMessage(chatID, render.Simulation(run), h.keyboard.SimulationKeyboard(run.ID))
}
