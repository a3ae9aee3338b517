package entity

import "time"

// StoreStatus สถานะร้านค้า
const (
	StoreStatusOpen   = "เปิดการขาย"
	StoreStatusClosed = "ปิดการขาย"
)

// Default payment terms for new stores.
const StoreDefaultPayment = "cash"

// Store is a customer business, the master record referenced by
// visits, plans, forecasts, issues and purchases.
type Store struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Code         string    `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	Owner        string    `json:"owner" gorm:"size:100"`
	Type         string    `json:"type" gorm:"size:50"`
	CustomerType string    `json:"customerType" gorm:"size:50"`
	Phone        string    `json:"phone" gorm:"size:20"`
	Address      string    `json:"address" gorm:"size:500"`
	ProductUsed  string    `json:"productUsed" gorm:"size:200"`
	Quantity     string    `json:"quantity" gorm:"size:100"`
	OrderPeriod  string    `json:"orderPeriod" gorm:"size:100"`
	Supplier     string    `json:"supplier" gorm:"size:200"`
	Payment      string    `json:"payment" gorm:"size:100"`
	PaymentScore *int      `json:"paymentScore"`
	Status       string    `json:"status" gorm:"size:50;not null"`
	CloseReason  *string   `json:"closeReason" gorm:"size:500"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Visits []Visit `json:"visits,omitempty" gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE"`
	Plans  []Plan  `json:"plans,omitempty" gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE"`
}

func (Store) TableName() string {
	return "stores"
}
