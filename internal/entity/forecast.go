package entity

import "time"

// Forecast is a weekly per-store-per-product sales target. Product is a
// free-text code/name, not a foreign key to the product catalog.
// WeekStart is the grouping key: queries match it within [start, start+6d].
type Forecast struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	MasterID    *string   `json:"masterId" gorm:"size:36;index"`
	Product     string    `json:"product" gorm:"size:200;not null"`
	TargetWeek  float64   `json:"targetWeek"`
	TargetMonth float64   `json:"targetMonth"`
	Forecast    float64   `json:"forecast"`
	Actual      float64   `json:"actual"`
	Notes       string    `json:"notes" gorm:"type:text"`
	WeekStart   time.Time `json:"weekStart" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Master *Store `json:"master,omitempty" gorm:"foreignKey:MasterID"`
}

func (Forecast) TableName() string {
	return "forecasts"
}
