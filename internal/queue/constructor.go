package queue

import (
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/internal/service"
)

type Queue struct {
	cc repository.ContentRepository
	ps service.PublishService
}

func NewQueue(cc repository.ContentRepository, ps service.PublishService) *Queue {
	return &Queue{
		cc: cc,
		ps: ps,
	}
}

const TaskTypePublishContent = "publish:content"

type PublishContentPayload struct {
	ContentCalendarID string `json:"content_calendar_id"`
}
