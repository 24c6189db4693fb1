package keyboard

import (
	"fmt"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string // "preset", "explain", "report"
	Value  string // The parameter
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

// EncodeReport creates the callback data of a report download button
func EncodeReport(simulationID string, format entity.ResultFormat) string {
	return EncodeCallback(ActionReport, simulationID+":"+string(format))
}

// ParseReport splits the value of a report callback into the run ID and format
func ParseReport(value string) (string, entity.ResultFormat, error) {
	id, f, ok := strings.Cut(value, ":")
	if !ok || id == "" {
		return "", "", fmt.Errorf("invalid report callback: %s", value)
	}
	format, valid := entity.ParseResultFormat(f)
	if !valid {
		return "", "", fmt.Errorf("%w: %s", entity.ErrInvalidFormat, f)
	}
	return id, format, nil
}
