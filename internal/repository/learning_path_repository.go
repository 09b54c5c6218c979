package repository

import (
	"training_portal_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) FindAll() ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Preload("Courses", func(db *gorm.DB) *gorm.DB {
		return db.Order("courses.id ASC")
	}).Order("id ASC").Find(&paths).Error
	return paths, err
}

func (r *LearningPathRepository) FindByID(id uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Preload("Courses", func(db *gorm.DB) *gorm.DB {
		return db.Order("courses.id ASC")
	}).First(&path, id).Error
	return &path, err
}

func (r *LearningPathRepository) FindByTitle(title string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Preload("Courses").Where("title = ?", title).First(&path).Error
	return &path, err
}

func (r *LearningPathRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningPath{}).Count(&count).Error
	return count, err
}

// Create 写入路径及其课程引用，不修改课程本身
func (r *LearningPathRepository) Create(path *model.LearningPath, courseIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(path).Error; err != nil {
			return err
		}
		return replaceCourseRefs(tx, path.ID, courseIDs)
	})
}

// Update 更新路径字段；courseIDs 为 nil 时保留原有课程引用
func (r *LearningPathRepository) Update(path *model.LearningPath, courseIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(path).Error; err != nil {
			return err
		}
		if courseIDs == nil {
			return nil
		}
		return replaceCourseRefs(tx, path.ID, courseIDs)
	})
}

func (r *LearningPathRepository) AddCourse(pathID, courseID uint) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.LearningPathCourse{LearningPathID: pathID, CourseID: courseID}).Error
}

func (r *LearningPathRepository) RemoveCourse(pathID, courseID uint) error {
	return r.DB.Where("learning_path_id = ? AND course_id = ?", pathID, courseID).
		Delete(&model.LearningPathCourse{}).Error
}

func (r *LearningPathRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learning_path_id = ?", id).Delete(&model.LearningPathCourse{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&model.LearningPath{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func replaceCourseRefs(tx *gorm.DB, pathID uint, courseIDs []uint) error {
	if err := tx.Where("learning_path_id = ?", pathID).Delete(&model.LearningPathCourse{}).Error; err != nil {
		return err
	}
	if len(courseIDs) == 0 {
		return nil
	}
	refs := make([]model.LearningPathCourse, 0, len(courseIDs))
	seen := make(map[uint]bool, len(courseIDs))
	for _, id := range courseIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, model.LearningPathCourse{LearningPathID: pathID, CourseID: id})
	}
	return tx.Create(&refs).Error
}
