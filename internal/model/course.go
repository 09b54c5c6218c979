package model

import (
	"time"
)

type Theme string

const (
	ThemeSafety     Theme = "Safety"
	ThemeLeadership Theme = "Leadership"
	ThemeCompliance Theme = "Compliance"
	ThemeSoftSkills Theme = "Soft Skills"
	ThemeTechnical  Theme = "Technical"
)

// Themes 课程主题，顺序即展示顺序
var Themes = []Theme{ThemeSafety, ThemeLeadership, ThemeCompliance, ThemeSoftSkills, ThemeTechnical}

func (t Theme) Valid() bool {
	for _, v := range Themes {
		if v == t {
			return true
		}
	}
	return false
}

type CourseStatus string

const (
	CourseActive   CourseStatus = "Active"
	CourseUpcoming CourseStatus = "Upcoming"
)

func (s CourseStatus) Valid() bool {
	return s == CourseActive || s == CourseUpcoming
}

type ModuleType string

const (
	ModuleVideo        ModuleType = "video"
	ModuleQuiz         ModuleType = "quiz"
	ModuleReading      ModuleType = "reading"
	ModuleAssignment   ModuleType = "assignment"
	ModulePresentation ModuleType = "presentation"
)

var ModuleTypes = []ModuleType{ModuleVideo, ModuleQuiz, ModuleReading, ModuleAssignment, ModulePresentation}

func (t ModuleType) Valid() bool {
	for _, v := range ModuleTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Label 展示用名称
func (t ModuleType) Label() string {
	switch t {
	case ModuleVideo:
		return "Video"
	case ModuleQuiz:
		return "Quiz"
	case ModuleReading:
		return "Reading"
	case ModuleAssignment:
		return "Assignment"
	case ModulePresentation:
		return "Presentation"
	}
	return "Content"
}

func (t ModuleType) Description() string {
	switch t {
	case ModuleVideo:
		return "Watch this instructional video to learn new concepts and techniques."
	case ModuleQuiz:
		return "Test your knowledge with this interactive quiz."
	case ModuleReading:
		return "Read through this comprehensive learning material."
	case ModuleAssignment:
		return "Complete this hands-on assignment to practice your skills."
	case ModulePresentation:
		return "Review this presentation containing key concepts and data."
	}
	return "Access this learning content to continue your progress."
}

// swagger:model Course
type Course struct {
	BaseModel
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Theme          Theme          `gorm:"size:32;index;not null" json:"theme"`
	TargetAudience string         `gorm:"size:255" json:"targetAudience"`
	Status         CourseStatus   `gorm:"size:16;default:'Active'" json:"status"`
	Image          string         `gorm:"size:512" json:"image"`
	StartDate      *time.Time     `json:"startDate,omitempty"`
	StartedAt      *time.Time     `json:"startedAt,omitempty"`
	CompletionRate int            `gorm:"default:0" json:"completionRate"`
	Modules        []CourseModule `gorm:"foreignKey:CourseID" json:"courseModules"`
}

func (Course) TableName() string {
	return "courses"
}

// Clone 深拷贝，编辑会话与快照读取都基于副本
func (c Course) Clone() Course {
	out := c
	if c.StartDate != nil {
		d := *c.StartDate
		out.StartDate = &d
	}
	if c.StartedAt != nil {
		s := *c.StartedAt
		out.StartedAt = &s
	}
	if c.Modules != nil {
		out.Modules = make([]CourseModule, len(c.Modules))
		copy(out.Modules, c.Modules)
	}
	return out
}

// swagger:model CourseModule
type CourseModule struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Type        ModuleType `gorm:"size:16;not null" json:"type"`
	Duration    int        `gorm:"default:0" json:"duration"` // 分钟
	Order       int        `gorm:"column:sort_order;not null" json:"order"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	MediaURL    string     `gorm:"size:512" json:"mediaUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
