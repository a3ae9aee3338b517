package repository

import (
	"context"
	"errors"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *IssueRepository) FindByID(ctx context.Context, id string) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.db.WithContext(ctx).Preload("Master").Where("id = ?", id).First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepository) Update(ctx context.Context, issue *entity.Issue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

func (r *IssueRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Issue{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *IssueRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Issue{}).Error
}

func (r *IssueRepository) List(ctx context.Context, search, issueType, status string) ([]entity.Issue, error) {
	query := r.db.WithContext(ctx).Model(&entity.Issue{}).Preload("Master")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("LEFT JOIN stores ON stores.id = issues.master_id").
			Where("issues.detail ILIKE ? OR issues.recorder ILIKE ? OR stores.name ILIKE ?", pattern, pattern, pattern)
	}
	if issueType != "" {
		query = query.Where("issues.type = ?", issueType)
	}
	if status != "" {
		query = query.Where("issues.status = ?", status)
	}

	var issues []entity.Issue
	err := query.Order("issues.date DESC").Find(&issues).Error
	return issues, err
}
