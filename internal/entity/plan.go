package entity

import "time"

// Plan is a scheduled future visit. Order is the rep's visit sequence
// number for that day, stored as a string-encoded integer.
type Plan struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	Sales     string    `json:"sales" gorm:"size:100;index"`
	MasterID  *string   `json:"masterId" gorm:"size:36;index"`
	VisitCat  string    `json:"visitCat" gorm:"size:100"`
	Notes     string    `json:"notes" gorm:"type:text"`
	Order     string    `json:"order" gorm:"column:sort_order;size:10"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Master *Store `json:"master,omitempty" gorm:"foreignKey:MasterID"`
}

func (Plan) TableName() string {
	return "plans"
}
