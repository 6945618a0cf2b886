package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Don-calvins/Loan-Automation/internal/app"
	"github.com/Don-calvins/Loan-Automation/internal/config"
	"github.com/Don-calvins/Loan-Automation/internal/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)
	if err := application.Run(ctx); err != nil {
		logger.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
