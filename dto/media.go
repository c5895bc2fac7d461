package dto

import "time"

// Media DTOs
type MediaUploadResponse struct {
	AssetID     string    `json:"asset_id"`
	LessonID    string    `json:"lesson_id"`
	FileType    string    `json:"file_type"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type LessonMediaResponse struct {
	LessonID string                `json:"lesson_id"`
	Assets   []MediaUploadResponse `json:"assets"`
}
