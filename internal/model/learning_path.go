package model

type PathStatus string

const (
	PathNotStarted PathStatus = "Not Started"
	PathInProgress PathStatus = "In Progress"
	PathCompleted  PathStatus = "Completed"
)

func (s PathStatus) Valid() bool {
	return s == PathNotStarted || s == PathInProgress || s == PathCompleted
}

// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	EstimatedHours string     `gorm:"size:32" json:"estimatedHours"`
	Image          string     `gorm:"size:512" json:"image"`
	Courses        []Course   `gorm:"many2many:learning_path_courses;" json:"courses"`
	Progress       int        `gorm:"-" json:"progress"`
	Status         PathStatus `gorm:"-" json:"status"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// LearningPathCourse 路径与课程的关联表
type LearningPathCourse struct {
	LearningPathID uint `gorm:"primaryKey"`
	CourseID       uint `gorm:"primaryKey;index"`
}

func (LearningPathCourse) TableName() string {
	return "learning_path_courses"
}
