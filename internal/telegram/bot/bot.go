package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/telegram/handlers"
	"github.com/futig/cpf-explainer/internal/telegram/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// UpdateHandler serves normalized updates
type UpdateHandler interface {
	HandleMessage(ctx context.Context, msg *handlers.Message)
	HandleCallback(ctx context.Context, msg *handlers.Message)
}

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handler     UpdateHandler
	logger      *zap.Logger
	dispatch    middleware.Handler
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New authorizes against the Bot API and wires the middleware chain
func New(
	cfg *config.TelegramConfig,
	api *tgbotapi.BotAPI,
	handler UpdateHandler,
	logger *zap.Logger,
) *Bot {
	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	b := &Bot{
		api:      api,
		cfg:      cfg,
		handler:  handler,
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	b.dispatch = middleware.Chain(b.handleUpdate,
		middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewRecoveryMiddleware(logger, api),
	)

	return b
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.dispatch(u)
			}(update)
		}
	}
}

// handleUpdate normalizes the update and routes it to the handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	msg := normalize(update)
	if msg == nil {
		return
	}
	ctx = logger.AddFields(ctx, zap.Int64("chat_id", msg.ChatID))

	if msg.CallbackID != "" {
		b.handler.HandleCallback(ctx, msg)
		return
	}
	b.handler.HandleMessage(ctx, msg)
}

// normalize converts a Bot API update; nil for updates the bot ignores
func normalize(update tgbotapi.Update) *handlers.Message {
	if q := update.CallbackQuery; q != nil {
		if q.Message == nil || q.Message.Chat == nil {
			return nil
		}
		msg := &handlers.Message{
			ChatID:       q.Message.Chat.ID,
			MessageID:    q.Message.MessageID,
			CallbackData: q.Data,
			CallbackID:   q.ID,
		}
		if q.From != nil {
			msg.UserID = q.From.ID
		}
		return msg
	}

	m := update.Message
	if m == nil || m.Chat == nil {
		return nil
	}
	msg := &handlers.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	if m.IsCommand() {
		msg.Command = m.Command()
		msg.Args = m.CommandArguments()
	}
	return msg
}
