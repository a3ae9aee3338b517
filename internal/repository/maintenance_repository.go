package repository

import (
	"context"
	"fmt"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

// MaintenanceRepository backs the one-off admin utilities: storage
// introspection, data-repair scripts and the full wipe.
type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// TableUsage is one table's share of the database size report.
type TableUsage struct {
	Table string `json:"table"`
	Size  string `json:"size"`
	Rows  int64  `json:"rows"`
}

// StorageUsage reports the database size and per-table sizes via
// PostgreSQL introspection.
func (r *MaintenanceRepository) StorageUsage(ctx context.Context) (string, []TableUsage, error) {
	var dbSize string
	err := r.db.WithContext(ctx).
		Raw("SELECT pg_size_pretty(pg_database_size(current_database()))").
		Scan(&dbSize).Error
	if err != nil {
		return "", nil, err
	}

	tables := []string{"stores", "visits", "plans", "forecasts", "products", "purchases", "issues", "profiles"}
	usage := make([]TableUsage, 0, len(tables))
	for _, table := range tables {
		var u TableUsage
		u.Table = table
		if err := r.db.WithContext(ctx).
			Raw(fmt.Sprintf("SELECT pg_size_pretty(pg_total_relation_size('%s'))", table)).
			Scan(&u.Size).Error; err != nil {
			return "", nil, err
		}
		if err := r.db.WithContext(ctx).
			Table(table).Count(&u.Rows).Error; err != nil {
			return "", nil, err
		}
		usage = append(usage, u)
	}
	return dbSize, usage, nil
}

// CleanSales strips the unregistered marker from historical rep names in
// visits and plans. Repair script for rows imported before profile
// registration existed.
func (r *MaintenanceRepository) CleanSales(ctx context.Context, marker string) (int64, error) {
	var total int64
	for _, table := range []string{"visits", "plans"} {
		res := r.db.WithContext(ctx).Exec(
			fmt.Sprintf("UPDATE %s SET sales = TRIM(REPLACE(sales, ?, '')) WHERE sales LIKE ?", table),
			marker, "%"+marker+"%",
		)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}
	return total, nil
}

// FixDates shifts Buddhist-Era-polluted dates back by 543 years across
// every dated table.
func (r *MaintenanceRepository) FixDates(ctx context.Context) (int64, error) {
	var total int64
	statements := []string{
		"UPDATE visits SET date = date - INTERVAL '543 years' WHERE EXTRACT(YEAR FROM date) > 2400",
		"UPDATE plans SET date = date - INTERVAL '543 years' WHERE EXTRACT(YEAR FROM date) > 2400",
		"UPDATE purchases SET date = date - INTERVAL '543 years' WHERE EXTRACT(YEAR FROM date) > 2400",
		"UPDATE issues SET date = date - INTERVAL '543 years' WHERE EXTRACT(YEAR FROM date) > 2400",
		"UPDATE forecasts SET week_start = week_start - INTERVAL '543 years' WHERE EXTRACT(YEAR FROM week_start) > 2400",
	}
	for _, stmt := range statements {
		res := r.db.WithContext(ctx).Exec(stmt)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}
	return total, nil
}

// Nuclear wipes every entity except profiles.
func (r *MaintenanceRepository) Nuclear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&entity.Visit{},
			&entity.Plan{},
			&entity.Forecast{},
			&entity.Purchase{},
			&entity.Issue{},
			&entity.Product{},
			&entity.Store{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
