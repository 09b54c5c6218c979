package service

import (
	"context"
	"fmt"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/progression"
	"training_portal_backend/internal/repository"
	"training_portal_backend/pkg/logger"
	"training_portal_backend/pkg/monitoring"
	"training_portal_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type ModuleView struct {
	model.CourseModule
	Locked      bool   `json:"locked"`
	CanComplete bool   `json:"canComplete"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type CourseViewer struct {
	Course         model.Course        `json:"course"`
	Modules        []ModuleView        `json:"modules"`
	ActiveModule   *ModuleView         `json:"activeModule,omitempty"`
	Previous       *model.CourseModule `json:"previousModule,omitempty"`
	Next           *model.CourseModule `json:"nextModule,omitempty"`
	TotalHours     float64             `json:"totalHours"`
	CompletedCount int                 `json:"completedCount"`
}

type CompletionResult struct {
	Course          model.Course `json:"course"`
	Changed         bool         `json:"changed"`
	CourseCompleted bool         `json:"courseCompleted"`
}

type ProgressionService struct {
	Store *CourseStore
	Logs  *repository.ActivityLogRepository
}

func NewProgressionService(store *CourseStore, logs *repository.ActivityLogRepository) *ProgressionService {
	return &ProgressionService{Store: store, Logs: logs}
}

// defaultActiveModule 第一个未完成且未锁定的模块；全部完成时为第一个模块
func defaultActiveModule(course model.Course) uint {
	sorted := progression.SortByOrder(course.Modules)
	for _, m := range sorted {
		if !m.IsCompleted && !progression.IsModuleLocked(course, m.ID) {
			return m.ID
		}
	}
	if len(sorted) > 0 {
		return sorted[0].ID
	}
	return 0
}

// CourseView 课程查看器数据。activeModuleID 为 0 或不属于该课程时使用默认模块
func (s *ProgressionService) CourseView(courseID, activeModuleID uint) (*CourseViewer, error) {
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	course = withImage(course)

	known := false
	for _, m := range course.Modules {
		if m.ID == activeModuleID {
			known = true
			break
		}
	}
	if !known {
		activeModuleID = defaultActiveModule(course)
	}

	view := &CourseViewer{
		Course:     course,
		Modules:    make([]ModuleView, 0, len(course.Modules)),
		TotalHours: progression.TotalDurationHours(course.Modules),
	}
	for _, m := range progression.SortByOrder(course.Modules) {
		mv := ModuleView{
			CourseModule: m,
			Locked:       progression.IsModuleLocked(course, m.ID),
			Label:        m.Type.Label(),
			Description:  m.Type.Description(),
		}
		mv.CanComplete = !m.IsCompleted && !mv.Locked && progression.CanManuallyComplete(course, m.ID, activeModuleID)
		if m.IsCompleted {
			view.CompletedCount++
		}
		view.Modules = append(view.Modules, mv)
		if m.ID == activeModuleID {
			active := mv
			view.ActiveModule = &active
		}
	}
	view.Previous, view.Next = progression.Neighbours(course, activeModuleID)
	return view, nil
}

// CompleteModule 标记模块完成。模块不存在时不做任何修改，返回当前课程
func (s *ProgressionService) CompleteModule(ctx context.Context, principal model.Principal, courseID, moduleID, activeModuleID uint) (*CompletionResult, error) {
	_, span := tracing.Tracer().Start(ctx, "progression.CompleteModule")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("course.id", int64(courseID)),
		attribute.Int64("module.id", int64(moduleID)),
	)

	course, out, err := s.Store.ApplyCompletion(courseID, moduleID, activeModuleID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Bool("module.changed", out.Changed),
		attribute.Int("course.completion_rate", course.CompletionRate),
	)

	result := &CompletionResult{Course: withImage(course), Changed: out.Changed, CourseCompleted: out.CourseCompleted}
	if !out.Changed {
		return result, nil
	}

	theme := string(course.Theme)
	monitoring.ModulesCompleted.WithLabelValues(theme).Inc()
	s.record(principal, courseID, moduleID, model.ActivityModuleCompleted,
		fmt.Sprintf("completed module %d of %q (%d%%)", moduleID, course.Title, course.CompletionRate))

	if out.CourseCompleted {
		monitoring.CoursesCompleted.WithLabelValues(theme).Inc()
		s.record(principal, courseID, 0, model.ActivityCourseCompleted,
			fmt.Sprintf("completed course %q", course.Title))
		logger.Log.Info("course completed",
			zap.Uint("courseID", courseID),
			zap.Uint("userID", principalID(principal)),
		)
	}
	return result, nil
}

// StartCourse 记录开始时间，不改变完成度
func (s *ProgressionService) StartCourse(ctx context.Context, principal model.Principal, courseID uint) (model.Course, error) {
	course, started, err := s.Store.MarkStarted(courseID, time.Now())
	if err != nil {
		return model.Course{}, err
	}
	if started {
		s.record(principal, courseID, 0, model.ActivityCourseStarted, fmt.Sprintf("started course %q", course.Title))
	}
	return withImage(course), nil
}

func principalID(p model.Principal) uint {
	if p == nil {
		return 0
	}
	return p.ID()
}

// record 活动日志写入失败只记录日志，不影响主流程
func (s *ProgressionService) record(principal model.Principal, courseID, moduleID uint, activity, content string) {
	if s.Logs == nil {
		return
	}
	entry := &model.ActivityLog{
		UserID:   principalID(principal),
		CourseID: courseID,
		ModuleID: moduleID,
		Activity: activity,
		Content:  content,
	}
	if err := s.Logs.Create(entry); err != nil {
		logger.Log.Warn("write activity log failed", zap.String("activity", activity), zap.Error(err))
	}
}
