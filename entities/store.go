package entities

import (
	"strings"
	"time"
)

// VisitedStore is one store visit attached to a post. It is kept as a loose
// JSON object because the content keys were renamed once (details -> content,
// action -> next_action) and old rows still carry the legacy names.
type VisitedStore map[string]string

func (v VisitedStore) Code() string { return strings.TrimSpace(v["code"]) }
func (v VisitedStore) Name() string { return strings.TrimSpace(v["name"]) }

// Store is the store master imported from the customer spreadsheet.
type Store struct {
	Code           string    `gorm:"primaryKey" json:"code"`
	Name           string    `gorm:"not null" json:"name"`
	PostalCode     string    `json:"postal_code,omitempty"`
	Address        string    `json:"address,omitempty"`
	DepartmentCode string    `json:"department_code,omitempty"`
	StaffCode      string    `json:"staff_code,omitempty"`
	StaffName      string    `json:"staff_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Store) TableName() string { return "stores" }
