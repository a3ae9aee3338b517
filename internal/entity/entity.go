package entity

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/gorm"
)

// JSONB maps to the PostgreSQL jsonb column type.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// AutoMigrate migrates all CRM tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Store{},
		&Visit{},
		&Plan{},
		&Forecast{},
		&Product{},
		&Purchase{},
		&Issue{},
		&Profile{},
	)
}
