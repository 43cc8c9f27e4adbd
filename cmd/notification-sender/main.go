package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ketewodros41-star/gym/internal/config"
	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/rabbitmq"
	"github.com/ketewodros41-star/gym/internal/services"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to connect to RabbitMQ", slog.String("URL", cfg.RabbitMQURL))
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to setup RabbitMQ channel")
	defer func() {
		_ = ch.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := services.NewSenderService(cfg, logger)

	if err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.QueueExpired, sender.SendExpiredMembershipEmail); err != nil {
		logger.Error("failed to start expired consumer", sl.Err(err))
		os.Exit(1)
	}
	if err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.QueueAdmins, sender.SendAdminSummaryEmail); err != nil {
		logger.Error("failed to start admin consumer", sl.Err(err))
		os.Exit(1)
	}

	<-ctx.Done()

	logger.Info("notification-sender stopped gracefully")
}
