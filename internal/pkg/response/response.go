// Package response writes JSON bodies and maps domain errors to HTTP statuses.
package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const encodeFailure = `{"error":"Internal Server Error","message":"response could not be encoded"}` + "\n"

// JSON writes a JSON response. The body is encoded before the status is sent,
// so an unencodable value becomes a 500 instead of a truncated reply.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailure))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// Error logs err and writes {"error": <status text>, "message": message}.
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	fields := []zap.Field{zap.Int("status", status)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, fields...)
	} else {
		ctxzap.Warn(ctx, message, fields...)
	}

	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// UsecaseError maps a domain error to its HTTP status and writes it.
func UsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	Error(ctx, w, status, message, err)
}

// StatusFor returns the HTTP status and client message for a domain error.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrSimulationNotFound), errors.Is(err, entity.ErrPresetNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, entity.ErrInvalidRange):
		return http.StatusBadRequest, "retirement age must be greater than or equal to current age"
	case errors.Is(err, entity.ErrInvalidInputs),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, entity.ErrCorpusUnavailable):
		return http.StatusServiceUnavailable, "policy corpus is not available yet, build it with `corpus build`"
	case errors.Is(err, entity.ErrEmbeddingFailed):
		return http.StatusBadGateway, "embedding service is unavailable"
	case errors.Is(err, entity.ErrCorpusMalformed), errors.Is(err, entity.ErrDimensionMismatch):
		return http.StatusInternalServerError, "policy corpus is inconsistent, rebuild it"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// File writes a downloadable attachment.
func File(w http.ResponseWriter, f *entity.ReportFile) {
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Content)
}
