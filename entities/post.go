package entities

import "time"

// Post is a daily report.
type Post struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	PostDate      time.Time      `json:"post_date"`
	ExecutionDate string         `gorm:"index;not null" json:"execution_date"` // YYYY-MM-DD
	Category      string         `json:"category"`
	Location      string         `json:"location"`
	Content       string         `json:"content"`
	Remarks       string         `json:"remarks"`
	ImageData     string         `json:"image_data,omitempty"` // base64
	VisitedStores []VisitedStore `gorm:"serializer:json" json:"visited_stores"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Author *User `gorm:"foreignKey:UserID" json:"author,omitempty"`

	// filled on reads, not stored
	Likes        int64 `gorm:"-" json:"likes"`
	NiceFights   int64 `gorm:"-" json:"nice_fights"`
	CommentCount int64 `gorm:"-" json:"comment_count"`
}

func (Post) TableName() string { return "posts" }

type ReportImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	FileName  string    `json:"file_name"`
	MIMEType  string    `json:"mime_type"`
	Data      string    `json:"data"` // base64
	CreatedAt time.Time `json:"created_at"`
}

func (ReportImage) TableName() string { return "report_images" }
