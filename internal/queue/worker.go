package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/service"
	"github.com/socialops/content-api/internal/transfer"
)

func (q *Queue) HandlePublishContentTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishContentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishContent(ctx, payload.ContentCalendarID)
}

// PublishContent publishes one due calendar item through the dispatcher.
// Retried tasks are safe: an item already published is skipped, and the
// dispatcher's status write is by absolute value.
func (q *Queue) PublishContent(ctx context.Context, contentCalendarID string) error {
	item, err := q.cc.GetByID(ctx, contentCalendarID)
	if err != nil {
		return err
	}
	if item == nil {
		slog.Info("scheduled content no longer exists", "content_calendar_id", contentCalendarID)
		return nil
	}

	if item.Status == models.ContentStatusPublished {
		slog.Info("scheduled content already published", "content_calendar_id", item.ID)
		return nil
	}

	if item.TargetProvider == "" {
		slog.Info("scheduled content has no target provider", "content_calendar_id", item.ID)
		return nil
	}

	req := &transfer.PublishRequest{
		CompanyID:         item.CompanyID,
		Provider:          item.TargetProvider,
		Content:           transfer.PublishContent{Text: item.Caption},
		ContentCalendarID: item.ID,
		AccountID:         item.TargetAccountID,
	}

	if _, err := q.ps.Publish(ctx, service.SystemCaller, req); err != nil {
		slog.Info("scheduled publish failed", "content_calendar_id", item.ID, "error", err.Error())
		return err
	}

	return nil
}
