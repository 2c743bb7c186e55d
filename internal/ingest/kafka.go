package ingest

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"alertrecon/internal/config"
)

// SnapshotHandler receives one complete export payload per Kafka message.
type SnapshotHandler func(ctx context.Context, payload []byte)

// StartKafka consumes export snapshots from a topic. Each message carries a
// whole export file, so this stays a snapshot-at-a-time delivery channel,
// not row streaming.
func StartKafka(ctx context.Context, cfg *config.Manager, handle SnapshotHandler, logger *slog.Logger) {
	current := cfg.Get().Kafka
	if !current.Enabled {
		if logger != nil {
			logger.Info("kafka snapshot source disabled")
		}
		return
	}
	if logger != nil {
		logger.Info("kafka snapshot source enabled", "brokers", current.Brokers, "topic", current.Topic, "group_id", current.GroupID)
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  current.Brokers,
		Topic:    current.Topic,
		GroupID:  current.GroupID,
		MinBytes: 1e3,
		MaxBytes: 50e6,
	})
	go func() {
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if logger != nil {
					logger.Warn("kafka read error", "err", err)
				}
				continue
			}
			if len(m.Value) == 0 {
				continue
			}
			handle(ctx, m.Value)
		}
	}()
}
