package handlers

import (
	"context"
	"errors"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError pairs an error with the message shown to the user
type HandlerError struct {
	Err         error
	UserMessage string
	Severity    ErrorSeverity
}

// classifyHandlerError maps domain errors to user messages and log severity
func classifyHandlerError(err error) *HandlerError {
	switch {
	case errors.Is(err, entity.ErrInvalidRange),
		errors.Is(err, entity.ErrInvalidInputs),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField):
		return &HandlerError{Err: err, UserMessage: render.InvalidInput(err.Error()), Severity: SeverityWarning}
	case errors.Is(err, entity.ErrSimulationNotFound):
		return &HandlerError{Err: err, UserMessage: render.ErrSimulationExpired, Severity: SeverityWarning}
	case errors.Is(err, entity.ErrPresetNotFound):
		return &HandlerError{Err: err, UserMessage: render.ErrPresetNotFound, Severity: SeverityWarning}
	case errors.Is(err, entity.ErrCorpusUnavailable):
		return &HandlerError{Err: err, UserMessage: render.ErrCorpusUnavailable, Severity: SeverityError}
	case errors.Is(err, entity.ErrEmbeddingFailed):
		return &HandlerError{Err: err, UserMessage: render.ErrServiceDown, Severity: SeverityError}
	case errors.Is(err, context.DeadlineExceeded):
		return &HandlerError{Err: err, UserMessage: render.ErrTimeout, Severity: SeverityError}
	default:
		return &HandlerError{Err: err, UserMessage: render.ErrGeneric, Severity: SeverityError}
	}
}

// handleError logs err and tells the user what went wrong
func (h *Handler) handleError(ctx context.Context, chatID int64, err error) {
	he := classifyHandlerError(err)

	fields := []zap.Field{zap.Error(err), zap.Int64("chat_id", chatID)}
	if he.Severity == SeverityWarning {
		ctxzap.Warn(ctx, "request rejected", fields...)
	} else {
		ctxzap.Error(ctx, "request failed", fields...)
	}

	h.sendMessage(chatID, he.UserMessage, nil)
}
