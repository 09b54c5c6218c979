package model

const (
	EventTypeTraining = "Training"
	EventTypePath     = "Path"
	EventTypeCourse   = "Course"
	EventTypeCustom   = "Custom"
)

// CalendarEvent 日程表事件；自定义事件整体序列化后存入键值存储
type CalendarEvent struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Date            string `json:"date"` // YYYY-MM-DD
	Type            string `json:"type"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
}
