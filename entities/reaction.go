package entities

import "time"

const (
	TargetPost = "post"
	TargetPlan = "plan"
)

type ReactionType string

const (
	ReactionLike      ReactionType = "like"
	ReactionNiceFight ReactionType = "nice_fight"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionNiceFight
}

func ValidTarget(t string) bool { return t == TargetPost || t == TargetPlan }

type Reaction struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"index;not null" json:"user_id"`
	TargetType string       `gorm:"index:idx_reaction_target;not null" json:"target_type"` // post|plan
	TargetID   uint         `gorm:"index:idx_reaction_target;not null" json:"target_id"`
	Type       ReactionType `gorm:"not null;check:type IN ('like','nice_fight')" json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (Reaction) TableName() string { return "reactions" }

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	TargetType string    `gorm:"index:idx_comment_target;not null" json:"target_type"`
	TargetID   uint      `gorm:"index:idx_comment_target;not null" json:"target_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`

	Author *User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"` // recipient
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
