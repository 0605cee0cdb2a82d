package consumer

import (
	"context"
	"encoding/json"

	"go-hrm/internal/events"
	"go-hrm/internal/mail"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmailRequests membaca event notifikasi email dan mengirimkannya
// lewat SMTP. Gagal kirim hanya di-log; message tetap di-commit supaya satu
// email rusak tidak memblokir antrian (kebijakan notify best-effort).
func ConsumeEmailRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	sender mail.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.email")
	log.Info("email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("email consumer stopped")
				return
			}
			log.Error("fetch email message failed", zap.Error(err))
			continue
		}

		var event events.EmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode email_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.To == "" {
			log.Warn("email event without recipient, skipping",
				zap.String("kind", event.Kind),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.Send(event.To, event.Subject, event.HTMLBody); err != nil {
			log.Error("send notification email failed",
				zap.String("kind", event.Kind),
				zap.String("to", event.To),
				zap.Error(err),
			)
		}

		_ = reader.CommitMessages(ctx, msg)
	}
}
