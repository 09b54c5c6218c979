package service

import (
	"errors"
	"fmt"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/progression"
	"training_portal_backend/internal/repository"

	"gorm.io/gorm"
)

const (
	OnboardingPathTitle = "Onboarding Path"
	continueLearningMax = 3
	popularThreshold    = 70
	newCourseWindow     = 7 * 24 * time.Hour
)

type CarouselKind int

const (
	CourseCarousel CarouselKind = iota
	PathCarousel
)

// ItemsPerSlide 按视口宽度决定每页卡片数
func ItemsPerSlide(kind CarouselKind, viewportWidth int) int {
	switch {
	case viewportWidth >= 1024:
		if kind == CourseCarousel {
			return 4
		}
		return 3
	case viewportWidth >= 768:
		if kind == CourseCarousel {
			return 3
		}
		return 2
	}
	return 1
}

// Paginate 将元素按 size 切分为若干页
func Paginate[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	slides := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		slides = append(slides, items[i:end])
	}
	return slides
}

type CourseCard struct {
	model.Course
	TotalHours float64 `json:"totalHours"`
	IsNew      bool    `json:"isNew"`
	IsPopular  bool    `json:"isPopular"`
}

type ThemeCards struct {
	Theme   model.Theme  `json:"theme"`
	Courses []CourseCard `json:"courses"`
}

type HomeData struct {
	HasStartedCourses bool                   `json:"hasStartedCourses"`
	ContinueLearning  []CourseCard           `json:"continueLearning"`
	Recommended       []ThemeCards           `json:"recommended"`
	RecommendedSlides [][]CourseCard         `json:"recommendedSlides"`
	OnboardingPath    *model.LearningPath    `json:"onboardingPath,omitempty"`
	PathSlides        [][]model.LearningPath `json:"pathSlides"`
}

type HomeService struct {
	Courses *CourseStore
	Paths   *LearningPathService
	Now     func() time.Time
}

func NewHomeService(courses *CourseStore, paths *LearningPathService) *HomeService {
	return &HomeService{Courses: courses, Paths: paths, Now: time.Now}
}

func (s *HomeService) card(c model.Course) CourseCard {
	c = withImage(c)
	return CourseCard{
		Course:     c,
		TotalHours: progression.TotalDurationHours(c.Modules),
		IsNew:      s.Now().Sub(c.CreatedAt) <= newCourseWindow,
		IsPopular:  c.CompletionRate > popularThreshold,
	}
}

func started(c model.Course) bool {
	return c.CompletionRate > 0 || c.StartedAt != nil
}

// Home 学员首页：继续学习、按主题推荐、入职路径以及轮播分页
func (s *HomeService) Home(viewportWidth int) (*HomeData, error) {
	courses, err := s.Courses.GetCourses(repository.CourseFilter{})
	if err != nil {
		return nil, err
	}

	data := &HomeData{ContinueLearning: []CourseCard{}}
	var recommended []CourseCard
	for _, c := range courses {
		if started(c) {
			data.HasStartedCourses = true
			if c.CompletionRate < 100 && len(data.ContinueLearning) < continueLearningMax {
				data.ContinueLearning = append(data.ContinueLearning, s.card(c))
			}
			continue
		}
		recommended = append(recommended, s.card(c))
	}

	data.Recommended = make([]ThemeCards, 0, len(model.Themes))
	for _, theme := range model.Themes {
		group := ThemeCards{Theme: theme, Courses: []CourseCard{}}
		for _, card := range recommended {
			if card.Theme == theme {
				group.Courses = append(group.Courses, card)
			}
		}
		data.Recommended = append(data.Recommended, group)
	}
	data.RecommendedSlides = Paginate(recommended, ItemsPerSlide(CourseCarousel, viewportWidth))

	paths, err := s.Paths.ListPaths("")
	if err != nil {
		return nil, err
	}
	data.PathSlides = Paginate(paths, ItemsPerSlide(PathCarousel, viewportWidth))

	onboarding, err := s.Paths.Repo.FindByTitle(OnboardingPathTitle)
	switch {
	case err == nil:
		decoratePath(onboarding)
		data.OnboardingPath = onboarding
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("load onboarding path: %w", err)
	}
	return data, nil
}
