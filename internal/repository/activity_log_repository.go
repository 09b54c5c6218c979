package repository

import (
	"training_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(log *model.ActivityLog) error {
	return r.DB.Create(log).Error
}

func (r *ActivityLogRepository) FindByUser(userID uint, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	query := r.DB.Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}

func (r *ActivityLogRepository) CountByActivity(activity string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityLog{}).Where("activity = ?", activity).Count(&count).Error
	return count, err
}
