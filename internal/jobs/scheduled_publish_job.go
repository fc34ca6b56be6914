package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/socialops/content-api/internal/queue"
	"github.com/socialops/content-api/internal/repository"
)

// ScheduledPublishJob periodically scans for SCHEDULED content whose time has
// come and hands each item to the publish queue.
type ScheduledPublishJob struct {
	cc     repository.ContentRepository
	client *asynq.Client
}

func NewScheduledPublishJob(cc repository.ContentRepository, client *asynq.Client) *ScheduledPublishJob {
	return &ScheduledPublishJob{
		cc:     cc,
		client: client,
	}
}

func (j *ScheduledPublishJob) EnqueueDue() {
	ctx := context.Background()

	items, err := j.cc.ListDueScheduled(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, item := range items {
		payload := queue.PublishContentPayload{ContentCalendarID: item.ID}
		if err := queue.EnqueuePublish(j.client, payload, 0); err != nil {
			slog.Info("failed to enqueue scheduled publish", "content_calendar_id", item.ID, "error", err.Error())
		}
	}
}
