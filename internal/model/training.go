package model

import "time"

type TrainingStatus string

const (
	TrainingNotStarted TrainingStatus = "Not Started"
	TrainingInProgress TrainingStatus = "In Progress"
	TrainingCompleted  TrainingStatus = "Completed"
)

func (s TrainingStatus) Valid() bool {
	return s == TrainingNotStarted || s == TrainingInProgress || s == TrainingCompleted
}

// swagger:model Training
type Training struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Duration    string         `gorm:"size:32" json:"duration"`
	Image       string         `gorm:"size:512" json:"image"`
	Status      TrainingStatus `gorm:"size:16;default:'Not Started'" json:"status"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
}

func (Training) TableName() string {
	return "trainings"
}
