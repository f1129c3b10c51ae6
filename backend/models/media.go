package models

import "gorm.io/gorm"

type MediaAsset struct {
	gorm.Model
	FileName     string `gorm:"not null" json:"file_name"`
	FileURL      string `gorm:"not null" json:"file_url"`
	FileType     string `gorm:"default:document" json:"file_type"` // image, video, document
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
	ThumbnailURL string `json:"thumbnail_url"`
}
