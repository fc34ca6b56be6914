package models

import "time"

type ContentItem struct {
	ID              string    `db:"id" json:"id"`
	CompanyID       string    `db:"company_id" json:"company_id"`
	Status          string    `db:"status" json:"status"`
	Caption         string    `db:"caption" json:"caption"`
	DMP             string    `db:"dmp" json:"dmp"`
	SocialPostID    string    `db:"social_post_id" json:"social_post_id"`
	SocialProvider  string    `db:"social_provider" json:"social_provider"`
	TargetProvider  string    `db:"target_provider" json:"target_provider"`
	TargetAccountID int64     `db:"target_account_id" json:"target_account_id"`
	ScheduledTime   time.Time `db:"scheduled_time" json:"scheduled_time"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ContentStatusDraft     = "DRAFT"
	ContentStatusInReview  = "IN_REVIEW"
	ContentStatusApproved  = "APPROVED"
	ContentStatusScheduled = "SCHEDULED"
	ContentStatusPublished = "PUBLISHED"
)

// statusRank orders the pipeline's forward-only write path. PUBLISHED is set
// by the dispatcher, never by a webhook.
var statusRank = map[string]int{
	ContentStatusDraft:     0,
	ContentStatusInReview:  1,
	ContentStatusApproved:  2,
	ContentStatusScheduled: 3,
	ContentStatusPublished: 4,
}

// ValidContentStatus reports whether status is part of the lifecycle.
func ValidContentStatus(status string) bool {
	_, ok := statusRank[status]
	return ok
}

// StatusAdvances reports whether moving from current to next is forward or a
// same-status overwrite. Retried webhooks land on the same status and must
// stay a no-op-safe write.
func StatusAdvances(current, next string) bool {
	return statusRank[next] >= statusRank[current]
}
