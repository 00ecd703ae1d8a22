package entities

import "time"

type WeeklyPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	StartDate string    `gorm:"index;not null" json:"start_date"` // YYYY-MM-DD
	EndDate   string    `json:"end_date"`                         // StartDate + 6 days
	Monday    string    `json:"monday"`
	Tuesday   string    `json:"tuesday"`
	Wednesday string    `json:"wednesday"`
	Thursday  string    `json:"thursday"`
	Friday    string    `json:"friday"`
	Saturday  string    `json:"saturday"`
	Sunday    string    `json:"sunday"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:UserID" json:"author,omitempty"`

	Likes        int64 `gorm:"-" json:"likes"`
	NiceFights   int64 `gorm:"-" json:"nice_fights"`
	CommentCount int64 `gorm:"-" json:"comment_count"`
}

func (WeeklyPlan) TableName() string { return "weekly_plans" }

// Days returns the seven per-day plans, Monday first.
func (p *WeeklyPlan) Days() [7]string {
	return [7]string{p.Monday, p.Tuesday, p.Wednesday, p.Thursday, p.Friday, p.Saturday, p.Sunday}
}
