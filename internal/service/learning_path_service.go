package service

import (
	"fmt"
	"math"
	"strings"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
)

const PathFilterAll = "All"

type PathRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	EstimatedHours string `json:"estimatedHours"`
	Image          string `json:"image"`
	CourseIDs      []uint `json:"courseIds"`
}

type LearningPathService struct {
	Repo    *repository.LearningPathRepository
	Courses *repository.CourseRepository
}

func NewLearningPathService(repo *repository.LearningPathRepository, courses *repository.CourseRepository) *LearningPathService {
	return &LearningPathService{Repo: repo, Courses: courses}
}

// PathProgress 课程完成度的平均值（四舍五入），无课程时为 0
func PathProgress(courses []model.Course) (int, model.PathStatus) {
	if len(courses) == 0 {
		return 0, model.PathNotStarted
	}
	total := 0
	for _, c := range courses {
		total += c.CompletionRate
	}
	progress := int(math.Round(float64(total) / float64(len(courses))))
	switch {
	case progress <= 0:
		return 0, model.PathNotStarted
	case progress >= 100:
		return 100, model.PathCompleted
	}
	return progress, model.PathInProgress
}

func decoratePath(p *model.LearningPath) {
	p.Progress, p.Status = PathProgress(p.Courses)
	if p.Image == "" {
		p.Image = util.PlaceholderImage(p.Title, "", 400, 150)
	}
	if p.Courses == nil {
		p.Courses = []model.Course{}
	}
	for i := range p.Courses {
		p.Courses[i] = withImage(p.Courses[i])
	}
}

// ListPaths status 为空或 All 时返回全部
func (s *LearningPathService) ListPaths(status string) ([]model.LearningPath, error) {
	status = strings.TrimSpace(status)
	if status != "" && status != PathFilterAll && !model.PathStatus(status).Valid() {
		return nil, util.ErrInvalidStatus
	}
	paths, err := s.Repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load learning paths: %w", err)
	}
	out := make([]model.LearningPath, 0, len(paths))
	for i := range paths {
		decoratePath(&paths[i])
		if status == "" || status == PathFilterAll || paths[i].Status == model.PathStatus(status) {
			out = append(out, paths[i])
		}
	}
	return out, nil
}

func (s *LearningPathService) GetPath(id uint) (*model.LearningPath, error) {
	path, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrPathNotFound)
	}
	decoratePath(path)
	return path, nil
}

func (s *LearningPathService) checkCourses(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[uint]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}
	courses, err := s.Courses.FindByIDs(ids)
	if err != nil {
		return err
	}
	if len(courses) != len(unique) {
		return util.ErrCourseNotFound
	}
	return nil
}

func (s *LearningPathService) CreatePath(req PathRequest) (*model.LearningPath, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, util.ErrTitleRequired
	}
	if err := s.checkCourses(req.CourseIDs); err != nil {
		return nil, err
	}
	path := &model.LearningPath{
		Title:          title,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		Image:          req.Image,
	}
	if err := s.Repo.Create(path, req.CourseIDs); err != nil {
		return nil, fmt.Errorf("create learning path: %w", err)
	}
	return s.GetPath(path.ID)
}

// UpdatePath CourseIDs 为 nil 时不修改课程列表
func (s *LearningPathService) UpdatePath(id uint, req PathRequest) (*model.LearningPath, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, util.ErrTitleRequired
	}
	path, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrPathNotFound)
	}
	if err := s.checkCourses(req.CourseIDs); err != nil {
		return nil, err
	}
	path.Title = title
	path.Description = req.Description
	path.EstimatedHours = req.EstimatedHours
	path.Image = req.Image
	path.Courses = nil
	if err := s.Repo.Update(path, req.CourseIDs); err != nil {
		return nil, fmt.Errorf("update learning path: %w", err)
	}
	return s.GetPath(id)
}

func (s *LearningPathService) DeletePath(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return notFound(err, util.ErrPathNotFound)
	}
	return nil
}

func (s *LearningPathService) AddCourse(pathID, courseID uint) (*model.LearningPath, error) {
	if _, err := s.Repo.FindByID(pathID); err != nil {
		return nil, notFound(err, util.ErrPathNotFound)
	}
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	if err := s.Repo.AddCourse(pathID, courseID); err != nil {
		return nil, err
	}
	return s.GetPath(pathID)
}

func (s *LearningPathService) RemoveCourse(pathID, courseID uint) (*model.LearningPath, error) {
	if _, err := s.Repo.FindByID(pathID); err != nil {
		return nil, notFound(err, util.ErrPathNotFound)
	}
	if err := s.Repo.RemoveCourse(pathID, courseID); err != nil {
		return nil, err
	}
	return s.GetPath(pathID)
}
