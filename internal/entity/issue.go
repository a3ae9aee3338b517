package entity

import "time"

// IssueStatus สถานะเรื่องร้องเรียน
const (
	IssueStatusPending = "pending"
	IssueStatusFixing  = "fixing"
	IssueStatusDone    = "done"
)

// Issue is a complaint/FAQ ticket raised against a store.
type Issue struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"size:100"`
	Detail    string    `json:"detail" gorm:"type:text"`
	Recorder  string    `json:"recorder" gorm:"size:100"`
	Status    string    `json:"status" gorm:"size:20;not null;default:pending"`
	MasterID  *string   `json:"masterId" gorm:"size:36;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Master *Store `json:"master,omitempty" gorm:"foreignKey:MasterID"`
}

func (Issue) TableName() string {
	return "issues"
}
