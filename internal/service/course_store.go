package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/progression"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"gorm.io/gorm"
)

// CourseStore 课程数据的唯一写入方。读取返回独立快照，写入串行执行
type CourseStore struct {
	Repo *repository.CourseRepository
	mu   sync.Mutex
}

func NewCourseStore(repo *repository.CourseRepository) *CourseStore {
	return &CourseStore{Repo: repo}
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (s *CourseStore) GetCourses(filter repository.CourseFilter) ([]model.Course, error) {
	courses, err := s.Repo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	return courses, nil
}

func (s *CourseStore) GetCourse(id uint) (model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		return model.Course{}, notFound(err, util.ErrCourseNotFound)
	}
	return course.Clone(), nil
}

// validateCourse 校验并规范化：模块按 order 排序后重新编号，完成度重新计算
func validateCourse(c *model.Course) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return util.ErrTitleRequired
	}
	if !c.Theme.Valid() {
		return util.ErrInvalidTheme
	}
	if c.Status == "" {
		c.Status = model.CourseActive
	}
	if !c.Status.Valid() {
		return util.ErrInvalidStatus
	}
	for i := range c.Modules {
		if strings.TrimSpace(c.Modules[i].Title) == "" {
			return util.ErrTitleRequired
		}
		if !c.Modules[i].Type.Valid() {
			return util.ErrInvalidModuleType
		}
		if c.Modules[i].Duration < 0 {
			c.Modules[i].Duration = 0
		}
	}
	c.Modules = progression.ReorderAfterRemoval(progression.SortByOrder(c.Modules))
	if err := checkModules(c.Modules); err != nil {
		return err
	}
	c.CompletionRate = progression.CompletionRate(c.Modules)
	return nil
}

// checkModules 已保存的模块 id 不能重复；已完成的模块只能位于未完成模块之前
func checkModules(modules []model.CourseModule) error {
	seen := make(map[uint]bool, len(modules))
	pending := false
	for _, m := range modules {
		if m.ID != 0 {
			if seen[m.ID] {
				return util.ErrDuplicateModule
			}
			seen[m.ID] = true
		}
		if !m.IsCompleted {
			pending = true
		} else if pending {
			return util.ErrCompletionOrder
		}
	}
	return nil
}

func (s *CourseStore) CreateCourse(course model.Course) (model.Course, error) {
	next := course.Clone()
	next.ID = 0
	for i := range next.Modules {
		next.Modules[i].ID = 0
		next.Modules[i].CourseID = 0
	}
	if err := validateCourse(&next); err != nil {
		return model.Course{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Repo.Create(&next); err != nil {
		return model.Course{}, fmt.Errorf("create course: %w", err)
	}
	return next.Clone(), nil
}

// UpdateCourse 整体替换已存在的课程
func (s *CourseStore) UpdateCourse(course model.Course) (model.Course, error) {
	next := course.Clone()
	if err := validateCourse(&next); err != nil {
		return model.Course{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.Repo.FindByID(next.ID); err != nil {
		return model.Course{}, notFound(err, util.ErrCourseNotFound)
	}
	if err := s.Repo.Replace(&next); err != nil {
		return model.Course{}, fmt.Errorf("replace course: %w", err)
	}
	return next.Clone(), nil
}

func (s *CourseStore) DeleteCourse(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Repo.Delete(id); err != nil {
		return notFound(err, util.ErrCourseNotFound)
	}
	return nil
}

// ApplyCompletion 在写锁内完成读取、规则检查和持久化，避免并发完成时丢失更新
func (s *CourseStore) ApplyCompletion(courseID, moduleID, activeModuleID uint) (model.Course, progression.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.Repo.FindByID(courseID)
	if err != nil {
		return model.Course{}, progression.Outcome{}, notFound(err, util.ErrCourseNotFound)
	}
	course := stored.Clone()

	next, out := progression.MarkComplete(course, moduleID)
	if !out.Found {
		return next, out, nil
	}
	if out.Locked {
		return course, out, util.ErrModuleLocked
	}
	if out.Changed && !progression.CanManuallyComplete(course, moduleID, activeModuleID) {
		return course, progression.Outcome{Found: true}, util.ErrManualCompletionDenied
	}
	if !out.Changed {
		return next, out, nil
	}

	if err := s.Repo.UpdateProgress(courseID, moduleID, next.CompletionRate); err != nil {
		return model.Course{}, progression.Outcome{}, fmt.Errorf("save progress: %w", err)
	}
	if next.StartedAt == nil {
		now := time.Now()
		if err := s.Repo.UpdateStartedAt(courseID, now); err != nil {
			return model.Course{}, progression.Outcome{}, fmt.Errorf("save start time: %w", err)
		}
		next.StartedAt = &now
	}
	return next, out, nil
}

// MarkStarted 首次开始学习时记录时间，已开始的课程保持不变
func (s *CourseStore) MarkStarted(courseID uint, at time.Time) (model.Course, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.Repo.FindByID(courseID)
	if err != nil {
		return model.Course{}, false, notFound(err, util.ErrCourseNotFound)
	}
	course := stored.Clone()
	if course.StartedAt != nil {
		return course, false, nil
	}
	if err := s.Repo.UpdateStartedAt(courseID, at); err != nil {
		return model.Course{}, false, fmt.Errorf("save start time: %w", err)
	}
	course.StartedAt = &at
	return course, true, nil
}

func (s *CourseStore) SetImage(courseID uint, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Repo.UpdateImage(courseID, image)
}

func (s *CourseStore) SetModuleMedia(moduleID uint, mediaURL string, durationMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Repo.UpdateModuleMedia(moduleID, mediaURL, durationMinutes)
}

// PromoteDue 将开课日期已到的 Upcoming 课程改为 Active
func (s *CourseStore) PromoteDue(now time.Time) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due, err := s.Repo.FindUpcomingDue(now)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(due))
	for i := range due {
		ids = append(ids, due[i].ID)
		due[i].Status = model.CourseActive
	}
	if err := s.Repo.UpdateStatus(ids, model.CourseActive); err != nil {
		return nil, err
	}
	return due, nil
}

// BeginEdit 复制当前课程作为草稿
func (s *CourseStore) BeginEdit(id uint) (*EditSession, error) {
	course, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}
	return &EditSession{store: s, draft: course}, nil
}

// EditSession 课程编辑草稿，只能提交或丢弃一次
type EditSession struct {
	store  *CourseStore
	draft  model.Course
	closed bool
}

// Draft 返回可直接修改的草稿
func (e *EditSession) Draft() *model.Course {
	return &e.draft
}

func (e *EditSession) Commit() (model.Course, error) {
	if e.closed {
		return model.Course{}, util.ErrEditSessionClosed
	}
	saved, err := e.store.UpdateCourse(e.draft)
	if err != nil {
		return model.Course{}, err
	}
	e.closed = true
	return saved, nil
}

func (e *EditSession) Discard() {
	e.closed = true
	e.draft = model.Course{}
}
