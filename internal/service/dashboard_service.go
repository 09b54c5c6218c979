package service

import (
	"math"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
)

const activeUserWindow = 30 * 24 * time.Hour

type DashboardStats struct {
	TotalCourses   int                 `json:"totalCourses"`
	TotalPaths     int64               `json:"totalPaths"`
	ActiveUsers    int64               `json:"activeUsers"`
	CompletionRate int                 `json:"completionRate"`
	RecentActivity []model.ActivityLog `json:"recentActivity"`
}

type DashboardService struct {
	Courses *CourseStore
	Paths   *repository.LearningPathRepository
	Users   *repository.UserRepository
	Logs    *repository.ActivityLogRepository
	Now     func() time.Time
}

func NewDashboardService(courses *CourseStore, paths *repository.LearningPathRepository, users *repository.UserRepository, logs *repository.ActivityLogRepository) *DashboardService {
	return &DashboardService{Courses: courses, Paths: paths, Users: users, Logs: logs, Now: time.Now}
}

func (s *DashboardService) Stats(principal model.Principal) (*DashboardStats, error) {
	courses, err := s.Courses.GetCourses(repository.CourseFilter{})
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{TotalCourses: len(courses)}
	if len(courses) > 0 {
		total := 0
		for _, c := range courses {
			total += c.CompletionRate
		}
		stats.CompletionRate = int(math.Round(float64(total) / float64(len(courses))))
	}

	if stats.TotalPaths, err = s.Paths.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.Users.CountActiveSince(s.Now().Add(-activeUserWindow)); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = s.Logs.FindByUser(principal.ID(), 10); err != nil {
		return nil, err
	}
	return stats, nil
}
