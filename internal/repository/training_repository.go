package repository

import (
	"time"
	"training_portal_backend/internal/model"

	"gorm.io/gorm"
)

type TrainingRepository struct {
	DB *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

func (r *TrainingRepository) FindAll() ([]model.Training, error) {
	var trainings []model.Training
	err := r.DB.Order("id ASC").Find(&trainings).Error
	return trainings, err
}

// FindUpdatedSince 报表周期过滤
func (r *TrainingRepository) FindUpdatedSince(since time.Time) ([]model.Training, error) {
	var trainings []model.Training
	err := r.DB.Where("updated_at >= ?", since).Order("id ASC").Find(&trainings).Error
	return trainings, err
}

func (r *TrainingRepository) FindByID(id uint) (*model.Training, error) {
	var training model.Training
	err := r.DB.First(&training, id).Error
	return &training, err
}

func (r *TrainingRepository) Create(training *model.Training) error {
	return r.DB.Create(training).Error
}

func (r *TrainingRepository) Update(training *model.Training) error {
	return r.DB.Save(training).Error
}

func (r *TrainingRepository) Delete(id uint) error {
	result := r.DB.Unscoped().Delete(&model.Training{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
