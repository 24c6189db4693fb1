package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/cpf-explainer/internal/builder"
	"go.uber.org/zap"
)

func main() {
	env := flag.String("env", "local", "environment name, loads .env.<env> when present")
	flag.Parse()

	if err := run(*env); err != nil {
		log.Fatal(err)
	}
}

func run(env string) error {
	bot, logger, cleanup, err := builder.BuildTelegramBot(env)
	if err != nil {
		return err
	}
	defer cleanup()
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Start(ctx); err != nil {
		logger.Error("telegram bot failed to start", zap.Error(err))
		return err
	}

	<-ctx.Done()
	logger.Info("received shutdown signal")

	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", zap.Error(err))
		return err
	}
	logger.Info("telegram bot stopped gracefully")
	return nil
}
