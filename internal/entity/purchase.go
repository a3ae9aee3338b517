package entity

import "time"

// PurchaseStatus สถานะการชำระ
const (
	PurchaseStatusPaid    = "paid"
	PurchaseStatusPending = "pending"
)

// Purchase is an order-tracking record for one billing round.
type Purchase struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Round     string    `json:"round" gorm:"size:100"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);default:0"`
	Status    string    `json:"status" gorm:"size:20;not null;default:pending"`
	StoreID   *string   `json:"storeId" gorm:"size:36;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store *Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}

func (Purchase) TableName() string {
	return "purchases"
}
