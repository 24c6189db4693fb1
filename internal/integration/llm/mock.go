package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns a canned explanation so the service runs without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating explanation via LLM")

	excerpts := strings.Count(req.Context, "[Source:")

	var b strings.Builder
	b.WriteString("This is a sample explanation generated without a language model.\n\n")
	fmt.Fprintf(&b, "It was prepared from %d policy excerpt(s). Key points:\n", excerpts)
	b.WriteString("- Your CPF savings grow with contributions and interest over time.\n")
	b.WriteString("- Retirement sums (BRS, FRS, ERS) set the monthly payout you can expect.\n")
	b.WriteString("- Rules change over time, so treat this as general information.\n\n")
	b.WriteString("Please check official CPF sources and calculators before making decisions.")

	return b.String(), nil
}
