package consumer

import (
	"context"
	"encoding/json"

	"organizerpro/internal/bootstrap"
	"organizerpro/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceUnlocked feeds unlock events into the audit sink so
// reopened periods leave a trail outside the producing service's database.
func ConsumeAttendanceUnlocked(
	ctx context.Context,
	reader *kafkago.Reader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_unlocked")
	log.Info("attendance unlocked consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance unlocked consumer stopped")
				return
			}
			log.Error("fetch attendance unlocked message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceUnlockedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance_unlocked event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "attendance.unlocked",
			Message: event.Reason,
			Meta: map[string]any{
				"tenant_id":   event.TenantID,
				"scope_key":   event.ScopeKey,
				"unlocked_by": event.UnlockedBy,
				"occurred_at": event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance unlocked message failed", zap.Error(err))
			continue
		}

		log.Info("attendance unlock audited",
			zap.String("tenant_id", event.TenantID),
			zap.String("scope_key", event.ScopeKey),
		)
	}
}
