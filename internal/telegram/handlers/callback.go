package handlers

import (
	"context"
	"strconv"

	"github.com/futig/cpf-explainer/internal/telegram/keyboard"
	"github.com/futig/cpf-explainer/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// HandleCallback serves inline keyboard clicks
func (h *Handler) HandleCallback(ctx context.Context, msg *Message) {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", msg.CallbackData),
		)
		h.messageSender.AnswerCallback(msg.CallbackID, "❌ Invalid button")
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("action", data.Action),
		zap.String("value", data.Value),
		zap.Int64("user_id", msg.UserID),
	)

	// Answer right away so Telegram does not show the click as stale
	h.messageSender.AnswerCallback(msg.CallbackID, "⏳ Working on it...")

	switch data.Action {
	case keyboard.ActionPreset:
		n, err := strconv.Atoi(data.Value)
		if err != nil {
			h.sendMessage(msg.ChatID, render.MsgPresetUsage, nil)
			return
		}
		h.runPreset(ctx, msg.ChatID, n)
	case keyboard.ActionExplain:
		h.explainSimulation(ctx, msg.ChatID, data.Value)
	case keyboard.ActionReport:
		h.sendReport(ctx, msg.ChatID, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action", zap.String("action", data.Action))
	}
}

func (h *Handler) explainSimulation(ctx context.Context, chatID int64, simulationID string) {
	run, err := h.simulationUC.Get(ctx, simulationID)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}

	typing := NewTypingNotifier(h.api, chatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	explanation, err := h.simulationUC.Explain(ctx, run)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}

	h.sendMessage(chatID, render.Explanation(explanation), nil)
}

func (h *Handler) sendReport(ctx context.Context, chatID int64, value string) {
	simulationID, format, err := keyboard.ParseReport(value)
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}

	file, err := h.simulationUC.Report(ctx, simulationID, format, "")
	if err != nil {
		h.handleError(ctx, chatID, err)
		return
	}

	if err := h.messageSender.SendDocument(chatID, file); err != nil {
		h.sendMessage(chatID, render.ErrGeneric, nil)
	}
}
