package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"github.com/google/uuid"
)

var eventColors = map[string]string{
	model.EventTypeTraining: "#4f46e5",
	model.EventTypePath:     "#16a34a",
	model.EventTypeCourse:   "#f59e0b",
	model.EventTypeCustom:   "#db2777",
}

type EventRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date" binding:"required"`
}

type ScheduleService struct {
	Trainings *repository.TrainingRepository
	Paths     *repository.LearningPathRepository
	Courses   *CourseStore
	Store     KeyValueStore
	Now       func() time.Time

	// 每个用户一把锁，串行化自定义事件列表的读改写
	locks sync.Map
}

func (s *ScheduleService) lockUser(userID uint) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func NewScheduleService(trainings *repository.TrainingRepository, paths *repository.LearningPathRepository, courses *CourseStore, store KeyValueStore) *ScheduleService {
	return &ScheduleService{
		Trainings: trainings,
		Paths:     paths,
		Courses:   courses,
		Store:     store,
		Now:       time.Now,
	}
}

func newEvent(id, title string, date time.Time, typ string) model.CalendarEvent {
	color := eventColors[typ]
	return model.CalendarEvent{
		ID:              id,
		Title:           title,
		Date:            date.Format(util.DateFormat),
		Type:            typ,
		BackgroundColor: color,
		BorderColor:     color,
	}
}

func (s *ScheduleService) eventsKey(userID uint) string {
	return fmt.Sprintf("calendar:%d:events", userID)
}

// Events 培训截止日期、学习路径开始日期、即将开课的课程以及用户自定义事件
func (s *ScheduleService) Events(ctx context.Context, principal model.Principal) ([]model.CalendarEvent, error) {
	today := s.Now()
	var events []model.CalendarEvent

	trainings, err := s.Trainings.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	for _, t := range trainings {
		date := today.AddDate(0, 0, 7)
		if t.Deadline != nil {
			date = *t.Deadline
		}
		events = append(events, newEvent(fmt.Sprintf("training-%d", t.ID), t.Title, date, model.EventTypeTraining))
	}

	paths, err := s.Paths.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load learning paths: %w", err)
	}
	for _, p := range paths {
		events = append(events, newEvent(fmt.Sprintf("path-%d", p.ID), p.Title, today.AddDate(0, 0, 3), model.EventTypePath))
	}

	courses, err := s.Courses.GetCourses(repository.CourseFilter{Status: model.CourseUpcoming})
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.StartDate == nil {
			continue
		}
		events = append(events, newEvent(fmt.Sprintf("course-%d", c.ID), c.Title, *c.StartDate, model.EventTypeCourse))
	}

	custom, err := s.customEvents(ctx, principal.ID())
	if err != nil {
		return nil, err
	}
	events = append(events, custom...)

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}

func (s *ScheduleService) customEvents(ctx context.Context, userID uint) ([]model.CalendarEvent, error) {
	blob, ok, err := s.Store.Get(ctx, s.eventsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load custom events: %w", err)
	}
	if !ok || blob == "" {
		return []model.CalendarEvent{}, nil
	}
	var events []model.CalendarEvent
	if err := json.Unmarshal([]byte(blob), &events); err != nil {
		return nil, fmt.Errorf("decode custom events: %w", err)
	}
	return events, nil
}

// saveCustomEvents 整体覆盖写入
func (s *ScheduleService) saveCustomEvents(ctx context.Context, userID uint, events []model.CalendarEvent) error {
	blob, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, s.eventsKey(userID), string(blob))
}

func (s *ScheduleService) AddCustomEvent(ctx context.Context, principal model.Principal, req EventRequest) (model.CalendarEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.CalendarEvent{}, util.ErrEventTitleRequired
	}
	date, err := parseDate(req.Date)
	if err != nil || date == nil {
		return model.CalendarEvent{}, util.ErrInvalidDate
	}

	defer s.lockUser(principal.ID())()
	events, err := s.customEvents(ctx, principal.ID())
	if err != nil {
		return model.CalendarEvent{}, err
	}
	event := newEvent(uuid.New().String(), title, *date, model.EventTypeCustom)
	events = append(events, event)
	if err := s.saveCustomEvents(ctx, principal.ID(), events); err != nil {
		return model.CalendarEvent{}, err
	}
	return event, nil
}

func (s *ScheduleService) DeleteCustomEvent(ctx context.Context, principal model.Principal, eventID string) error {
	defer s.lockUser(principal.ID())()
	events, err := s.customEvents(ctx, principal.ID())
	if err != nil {
		return err
	}
	kept := make([]model.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return util.ErrEventNotFound
	}
	return s.saveCustomEvents(ctx, principal.ID(), kept)
}
