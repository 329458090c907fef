package model

import (
	"time"
)

// ContentType classifies what a clipboard item holds.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// ClipboardItem is one persisted clipboard capture. For text items Content
// holds the text itself; for image items it holds the absolute path of the
// PNG file written at capture time. IDs are assigned by the store on insert.
type ClipboardItem struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	ContentType ContentType `json:"content_type" gorm:"not null"`
	Content     string      `json:"content" gorm:"not null"`
	Timestamp   time.Time   `json:"timestamp" gorm:"index:idx_timestamp,sort:desc"`
	IsFavorite  bool        `json:"is_favorite" gorm:"default:false"`
	CreatedAt   time.Time   `json:"-"`
}

// TableName keeps the table name the original schema used.
func (ClipboardItem) TableName() string { return "clipboard_items" }

// NewItem creates an unsaved clipboard item stamped with the capture time.
func NewItem(contentType ContentType, content string) *ClipboardItem {
	return &ClipboardItem{
		ContentType: contentType,
		Content:     content,
		Timestamp:   time.Now(),
	}
}

// IsImage reports whether the item references a saved image file.
func (i *ClipboardItem) IsImage() bool { return i.ContentType == ContentTypeImage }

// Stats are the aggregate counts shown in the status line.
type Stats struct {
	TotalItems    int64
	FavoriteItems int64
	HistoryLimit  int
}
