package service

import (
	"fmt"
	"strings"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/progression"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/logger"
	"training_portal_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type ModuleInput struct {
	ID       uint             `json:"id"`
	Title    string           `json:"title" binding:"required"`
	Type     model.ModuleType `json:"type" binding:"required,module_type"`
	Duration int              `json:"duration" binding:"min=0"`
	MediaURL string           `json:"mediaUrl"`
}

type CourseRequest struct {
	Title          string             `json:"title" binding:"required"`
	Description    string             `json:"description"`
	Theme          model.Theme        `json:"theme" binding:"required,course_theme"`
	TargetAudience string             `json:"targetAudience"`
	Status         model.CourseStatus `json:"status"`
	Image          string             `json:"image"`
	StartDate      string             `json:"startDate"`
	Modules        []ModuleInput      `json:"courseModules" binding:"dive"`
}

type ThemeGroup struct {
	Theme   model.Theme    `json:"theme"`
	Courses []model.Course `json:"courses"`
}

type CourseService struct {
	Store *CourseStore
}

func NewCourseService(store *CourseStore) *CourseService {
	return &CourseService{Store: store}
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(util.DateFormat, s, time.Local)
	if err != nil {
		return nil, util.ErrInvalidDate
	}
	return &t, nil
}

func withImage(c model.Course) model.Course {
	c.Image = util.CourseImageURL(c.Image, c.Title, string(c.Theme))
	return c
}

func (s *CourseService) ListCourses(filter repository.CourseFilter) ([]model.Course, error) {
	if filter.Theme != "" && !filter.Theme.Valid() {
		return nil, util.ErrInvalidTheme
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, util.ErrInvalidStatus
	}
	courses, err := s.Store.GetCourses(filter)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i] = withImage(courses[i])
	}
	return courses, nil
}

// CoursesByTheme 按主题分组，主题顺序固定，空主题也保留
func (s *CourseService) CoursesByTheme() ([]ThemeGroup, error) {
	courses, err := s.ListCourses(repository.CourseFilter{})
	if err != nil {
		return nil, err
	}
	return groupByTheme(courses), nil
}

func groupByTheme(courses []model.Course) []ThemeGroup {
	groups := make([]ThemeGroup, 0, len(model.Themes))
	for _, theme := range model.Themes {
		group := ThemeGroup{Theme: theme, Courses: []model.Course{}}
		for _, c := range courses {
			if c.Theme == theme {
				group.Courses = append(group.Courses, c)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func (s *CourseService) Themes() []model.Theme {
	out := make([]model.Theme, len(model.Themes))
	copy(out, model.Themes)
	return out
}

func (s *CourseService) GetCourse(id uint) (model.Course, error) {
	course, err := s.Store.GetCourse(id)
	if err != nil {
		return model.Course{}, err
	}
	return withImage(course), nil
}

func modulesFromInput(inputs []ModuleInput) []model.CourseModule {
	modules := make([]model.CourseModule, 0, len(inputs))
	for i, in := range inputs {
		modules = append(modules, model.CourseModule{
			ID:       in.ID,
			Title:    strings.TrimSpace(in.Title),
			Type:     in.Type,
			Duration: in.Duration,
			Order:    i + 1,
			MediaURL: in.MediaURL,
		})
	}
	return modules
}

// CreateCourse 模块按给定顺序编号为 1..n
func (s *CourseService) CreateCourse(req CourseRequest) (model.Course, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return model.Course{}, err
	}
	course := model.Course{
		Title:          req.Title,
		Description:    req.Description,
		Theme:          req.Theme,
		TargetAudience: req.TargetAudience,
		Status:         req.Status,
		StartDate:      startDate,
		Modules:        modulesFromInput(req.Modules),
	}
	course.Image = util.CourseImageURL(req.Image, strings.TrimSpace(req.Title), string(req.Theme))

	created, err := s.Store.CreateCourse(course)
	if err != nil {
		return model.Course{}, err
	}
	logger.Log.Info("course created", zap.Uint("courseID", created.ID), zap.String("title", created.Title))
	return created, nil
}

// UpdateCourse 通过编辑会话整体替换课程。
// 已有模块保留完成状态和原有先后顺序，未列出的模块被删除，新模块追加在末尾。
func (s *CourseService) UpdateCourse(id uint, req CourseRequest) (model.Course, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return model.Course{}, err
	}

	session, err := s.Store.BeginEdit(id)
	if err != nil {
		return model.Course{}, err
	}

	draft := session.Draft()
	modules, err := mergeModules(progression.SortByOrder(draft.Modules), req.Modules)
	if err != nil {
		session.Discard()
		return model.Course{}, err
	}

	draft.Title = req.Title
	draft.Description = req.Description
	draft.Theme = req.Theme
	draft.TargetAudience = req.TargetAudience
	if req.Status != "" {
		draft.Status = req.Status
	}
	draft.StartDate = startDate
	draft.Image = util.CourseImageURL(req.Image, strings.TrimSpace(req.Title), string(req.Theme))
	draft.Modules = modules

	saved, err := session.Commit()
	if err != nil {
		session.Discard()
		return model.Course{}, err
	}
	return saved, nil
}

// mergeModules 按已保存的顺序合并请求中的模块；重复的 id 返回 ErrDuplicateModule
func mergeModules(stored []model.CourseModule, inputs []ModuleInput) ([]model.CourseModule, error) {
	byID := make(map[uint]ModuleInput, len(inputs))
	var added []model.CourseModule
	for _, in := range inputs {
		if in.ID != 0 {
			if _, dup := byID[in.ID]; dup {
				return nil, util.ErrDuplicateModule
			}
			byID[in.ID] = in
		}
	}

	modules := make([]model.CourseModule, 0, len(inputs))
	known := make(map[uint]bool, len(stored))
	for _, old := range stored {
		known[old.ID] = true
		in, ok := byID[old.ID]
		if !ok {
			continue
		}
		m := old
		m.Title = strings.TrimSpace(in.Title)
		m.Type = in.Type
		m.Duration = in.Duration
		if in.MediaURL != "" {
			m.MediaURL = in.MediaURL
		}
		modules = append(modules, m)
	}
	for _, in := range inputs {
		if known[in.ID] {
			continue
		}
		added = append(added, model.CourseModule{
			Title:    strings.TrimSpace(in.Title),
			Type:     in.Type,
			Duration: in.Duration,
			MediaURL: in.MediaURL,
		})
	}
	modules = append(modules, added...)
	return progression.ReorderAfterRemoval(modules), nil
}

func (s *CourseService) DeleteCourse(id uint) error {
	if err := s.Store.DeleteCourse(id); err != nil {
		return err
	}
	logger.Log.Info("course deleted", zap.Uint("courseID", id))
	return nil
}

// AddModule 追加到课程末尾
func (s *CourseService) AddModule(courseID uint, in ModuleInput) (model.Course, error) {
	session, err := s.Store.BeginEdit(courseID)
	if err != nil {
		return model.Course{}, err
	}
	draft := session.Draft()
	draft.Modules = progression.AppendModule(progression.SortByOrder(draft.Modules), model.CourseModule{
		Title:    strings.TrimSpace(in.Title),
		Type:     in.Type,
		Duration: in.Duration,
		MediaURL: in.MediaURL,
	})
	saved, err := session.Commit()
	if err != nil {
		session.Discard()
		return model.Course{}, err
	}
	return saved, nil
}

// RemoveModule 删除模块后剩余模块重新编号
func (s *CourseService) RemoveModule(courseID, moduleID uint) (model.Course, error) {
	session, err := s.Store.BeginEdit(courseID)
	if err != nil {
		return model.Course{}, err
	}
	draft := session.Draft()
	found := false
	for _, m := range draft.Modules {
		if m.ID == moduleID {
			found = true
			break
		}
	}
	if !found {
		session.Discard()
		return model.Course{}, util.ErrModuleNotFound
	}
	draft.Modules = progression.RemoveModule(progression.SortByOrder(draft.Modules), moduleID)
	saved, err := session.Commit()
	if err != nil {
		session.Discard()
		return model.Course{}, err
	}
	return saved, nil
}

// PromoteDueCourses 定时任务调用
func (s *CourseService) PromoteDueCourses(now time.Time) (int, error) {
	promoted, err := s.Store.PromoteDue(now)
	if err != nil {
		return 0, fmt.Errorf("promote courses: %w", err)
	}
	for _, c := range promoted {
		logger.Log.Info("course is now active", zap.Uint("courseID", c.ID), zap.String("title", c.Title))
	}
	monitoring.CoursesPromoted.Add(float64(len(promoted)))
	return len(promoted), nil
}
