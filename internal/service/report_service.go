package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

type ReportKPIs struct {
	TotalTrainings     int `json:"totalTrainings"`
	CompletedTrainings int `json:"completedTrainings"`
	CompletionRate     int `json:"completionRate"`
	ActivePaths        int `json:"activePaths"`
}

type Chart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type ReportRow struct {
	Training   string               `json:"training"`
	Status     model.TrainingStatus `json:"status"`
	Completion int                  `json:"completion"`
}

type Report struct {
	Period   string      `json:"period"`
	KPIs     ReportKPIs  `json:"kpis"`
	BarChart Chart       `json:"barChart"`
	PieChart Chart       `json:"pieChart"`
	Rows     []ReportRow `json:"rows"`
}

type ReportService struct {
	Trainings *repository.TrainingRepository
	Paths     *repository.LearningPathRepository
	Courses   *CourseStore
	Now       func() time.Time
}

func NewReportService(trainings *repository.TrainingRepository, paths *repository.LearningPathRepository, courses *CourseStore) *ReportService {
	return &ReportService{Trainings: trainings, Paths: paths, Courses: courses, Now: time.Now}
}

// trainingCompletion 只有已完成的培训计为 100
func trainingCompletion(status model.TrainingStatus) int {
	if status == model.TrainingCompleted {
		return 100
	}
	return 0
}

func (s *ReportService) trainingsFor(period string) ([]model.Training, error) {
	switch period {
	case "":
		return s.Trainings.FindAll()
	case PeriodWeek:
		return s.Trainings.FindUpdatedSince(s.Now().AddDate(0, 0, -7))
	case PeriodMonth:
		return s.Trainings.FindUpdatedSince(s.Now().AddDate(0, -1, 0))
	}
	return nil, util.ErrInvalidPeriod
}

// Build period 为空表示全部，week / month 只统计该周期内更新过的培训
func (s *ReportService) Build(period string) (*Report, error) {
	trainings, err := s.trainingsFor(period)
	if err != nil {
		return nil, err
	}
	paths, err := s.Paths.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load learning paths: %w", err)
	}
	courses, err := s.Courses.GetCourses(repository.CourseFilter{})
	if err != nil {
		return nil, err
	}

	report := &Report{Period: period, Rows: make([]ReportRow, 0, len(trainings))}
	report.KPIs.TotalTrainings = len(trainings)
	for _, t := range trainings {
		if t.Status == model.TrainingCompleted {
			report.KPIs.CompletedTrainings++
		}
		report.Rows = append(report.Rows, ReportRow{
			Training:   t.Title,
			Status:     t.Status,
			Completion: trainingCompletion(t.Status),
		})
	}
	if report.KPIs.TotalTrainings > 0 {
		report.KPIs.CompletionRate = int(math.Round(float64(report.KPIs.CompletedTrainings) * 100 / float64(report.KPIs.TotalTrainings)))
	}
	for i := range paths {
		if _, status := PathProgress(paths[i].Courses); status == model.PathInProgress {
			report.KPIs.ActivePaths++
		}
	}

	report.BarChart = themeAverages(courses)
	report.PieChart = Chart{
		Labels: []string{"Trainings", "Paths"},
		Values: []int{len(trainings), len(paths)},
	}
	return report, nil
}

// themeAverages 各主题课程的平均完成度
func themeAverages(courses []model.Course) Chart {
	chart := Chart{Labels: make([]string, 0, len(model.Themes)), Values: make([]int, 0, len(model.Themes))}
	for _, group := range groupByTheme(courses) {
		avg := 0
		if len(group.Courses) > 0 {
			total := 0
			for _, c := range group.Courses {
				total += c.CompletionRate
			}
			avg = int(math.Round(float64(total) / float64(len(group.Courses))))
		}
		chart.Labels = append(chart.Labels, string(group.Theme))
		chart.Values = append(chart.Values, avg)
	}
	return chart
}

// ExportCSV 列：Training,Status,Completion
func (s *ReportService) ExportCSV(w io.Writer, period string) error {
	report, err := s.Build(period)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Training", "Status", "Completion"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := cw.Write([]string{row.Training, string(row.Status), strconv.Itoa(row.Completion)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
