package entity

import "time"

// DealStatus ผลการเข้าพบ
const (
	DealStatusOpen   = "open"
	DealStatusClosed = "closed"
)

// Visit is one dated visit by a sales rep against a store. Sales is a
// free-text rep display name, not a foreign key to Profile; the name
// merge on profile registration is the compensating reconciliation.
type Visit struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Sales       string    `json:"sales" gorm:"size:100;index"`
	MasterID    *string   `json:"masterId" gorm:"size:36;index"`
	VisitCat    string    `json:"visitCat" gorm:"size:100"`
	VisitType   string    `json:"visitType" gorm:"size:100"`
	DealStatus  string    `json:"dealStatus" gorm:"size:20"`
	CloseReason string    `json:"closeReason" gorm:"size:500"`
	Notes       JSONB     `json:"notes" gorm:"type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Master *Store `json:"master,omitempty" gorm:"foreignKey:MasterID"`
}

func (Visit) TableName() string {
	return "visits"
}
