package common

import (
	"github.com/futig/cpf-explainer/internal/config"
	pkgHTTP "github.com/futig/cpf-explainer/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds the OpenAI-compatible HTTP connector shared by the
// embedding and generation collaborators. name tags every log line.
func NewBaseConnector(name string, cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	logger = logger.Named(name).With(zap.String("base_url", cfg.Url))
	if cfg.Token == "" {
		logger.Warn("collaborator has no API token, requests are sent unauthenticated")
	}

	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}
	if cfg.Token != "" {
		opts = append(opts, pkgHTTP.WithAuthToken(cfg.Token))
	}

	return pkgHTTP.NewConnector(&pkgHTTP.ConnectorConfig{Logger: logger, BaseURL: cfg.Url}, opts...)
}
