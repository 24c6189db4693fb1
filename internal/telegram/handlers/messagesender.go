package handlers

import (
	"fmt"

	"github.com/futig/cpf-explainer/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram rejects longer message texts
const maxMessageRunes = 4096

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot    Sender
	logger *zap.Logger
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot Sender, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		bot:    bot,
		logger: logger,
	}
}

// Send sends a message to the specified chat
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, truncateRunes(text, maxMessageRunes))
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	_, err := s.bot.Send(msg)
	if err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	return nil
}

// SendDocument uploads a rendered report
func (s *MessageSender) SendDocument(chatID int64, file *entity.ReportFile) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  file.Filename,
		Bytes: file.Content,
	})

	if _, err := s.bot.Send(doc); err != nil {
		s.logger.Error("failed to send document",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("filename", file.Filename),
		)
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}

// AnswerCallback acknowledges a button click
func (s *MessageSender) AnswerCallback(callbackID, text string) {
	if callbackID == "" {
		return
	}
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
