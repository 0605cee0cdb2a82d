package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-hrm/internal/events"
	"go-hrm/internal/mail"
	"go-hrm/internal/messaging/kafka/consumer"
	"go-hrm/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer mengkonsumsi event email dari kafka dan mengirimnya via SMTP.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	sender := mail.NewSMTPSender(mail.Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}, logger)

	reader := connection.NewKafkaReader(kafkaBroker, events.EmailRequestedTopic, "go-hrm-email")
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmailRequests(ctx, reader, sender, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
