package models

import "time"

type MediaAsset struct {
	ID        int64     `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"company_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PostingHistory struct {
	ID                int64     `db:"id" json:"id"`
	CompanyID         string    `db:"company_id" json:"company_id"`
	ContentCalendarID string    `db:"content_calendar_id" json:"content_calendar_id"`
	Provider          string    `db:"provider" json:"provider"`
	PostID            string    `db:"post_id" json:"post_id"`
	ErrorMessage      string    `db:"error_message" json:"error_message"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
