package repository

import (
	"time"
	"training_portal_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseFilter struct {
	Theme  model.Theme
	Status model.CourseStatus
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func orderedModules(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func (r *CourseRepository) FindAll(filter CourseFilter) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Preload("Modules", orderedModules)
	if filter.Theme != "" {
		query = query.Where("theme = ?", filter.Theme)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	err := query.Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Modules", orderedModules).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByIDs(ids []uint) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.DB.Where("id IN ?", ids).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}

// Create 同时写入课程及其模块
func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// Replace 整体替换课程：更新课程字段，删除不再存在的模块，写入其余模块
func (r *CourseRepository) Replace(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(course).Error; err != nil {
			return err
		}

		keep := make([]uint, 0, len(course.Modules))
		for _, m := range course.Modules {
			if m.ID != 0 {
				keep = append(keep, m.ID)
			}
		}
		stale := tx.Where("course_id = ?", course.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&model.CourseModule{}).Error; err != nil {
			return err
		}

		for i := range course.Modules {
			course.Modules[i].CourseID = course.ID
			if err := tx.Save(&course.Modules[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateProgress 标记单个模块完成并写入新的完成度
func (r *CourseRepository) UpdateProgress(courseID, moduleID uint, completionRate int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CourseModule{}).
			Where("id = ? AND course_id = ?", moduleID, courseID).
			Update("is_completed", true).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).
			Where("id = ?", courseID).
			Update("completion_rate", completionRate).Error
	})
}

func (r *CourseRepository) UpdateStartedAt(courseID uint, startedAt time.Time) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ? AND started_at IS NULL", courseID).
		Update("started_at", startedAt).Error
}

func (r *CourseRepository) UpdateModuleMedia(moduleID uint, mediaURL string, duration int) error {
	updates := map[string]interface{}{"media_url": mediaURL}
	if duration > 0 {
		updates["duration"] = duration
	}
	return r.DB.Model(&model.CourseModule{}).Where("id = ?", moduleID).Updates(updates).Error
}

func (r *CourseRepository) UpdateImage(courseID uint, image string) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", courseID).Update("image", image).Error
}

// Delete 删除课程，级联删除模块和学习路径引用
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseModule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.LearningPathCourse{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&model.Course{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindUpcomingDue 开课日期已到但仍为 Upcoming 的课程
func (r *CourseRepository) FindUpcomingDue(now time.Time) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ? AND start_date IS NOT NULL AND start_date <= ?", model.CourseUpcoming, now).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) UpdateStatus(ids []uint, status model.CourseStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Model(&model.Course{}).Where("id IN ?", ids).Update("status", status).Error
}
