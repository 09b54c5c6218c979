package model

import (
	"time"
)

const (
	ActivityModuleCompleted = "module_completed"
	ActivityCourseCompleted = "course_completed"
	ActivityCourseStarted   = "course_started"
)

// ActivityLog 记录用户的学习活动
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	CourseID  uint      `gorm:"index" json:"courseId"`
	ModuleID  uint      `gorm:"index" json:"moduleId,omitempty"`
	Activity  string    `gorm:"size:32;index" json:"activity"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
