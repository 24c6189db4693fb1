package keyboard

import (
	"fmt"
	"strconv"

	"github.com/futig/cpf-explainer/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions
const (
	ActionPreset  = "preset"
	ActionExplain = "explain"
	ActionReport  = "report"
)

const maxPresetButtons = 10

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// PresetsKeyboard creates one button per example profile
func (b *Builder) PresetsKeyboard(presets []entity.Preset) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	count := len(presets)
	if count > maxPresetButtons {
		count = maxPresetButtons
	}

	for i := 0; i < count; i++ {
		n := strconv.Itoa(i + 1)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s. %s", n, presets[i].Name),
				EncodeCallback(ActionPreset, n),
			),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// SimulationKeyboard offers an explanation and report downloads for a run
func (b *Builder) SimulationKeyboard(simulationID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Explain", EncodeCallback(ActionExplain, simulationID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF", EncodeReport(simulationID, entity.FormatPDF)),
			tgbotapi.NewInlineKeyboardButtonData("📝 DOCX", EncodeReport(simulationID, entity.FormatDOCX)),
			tgbotapi.NewInlineKeyboardButtonData("🗒 Markdown", EncodeReport(simulationID, entity.FormatMarkdown)),
		),
	)
}
