package service

import (
	"fmt"
	"strings"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
)

type TrainingRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	Duration    string               `json:"duration"`
	Image       string               `json:"image"`
	Status      model.TrainingStatus `json:"status"`
	Deadline    string               `json:"deadline"`
}

type TrainingService struct {
	Repo *repository.TrainingRepository
}

func NewTrainingService(repo *repository.TrainingRepository) *TrainingService {
	return &TrainingService{Repo: repo}
}

func (s *TrainingService) ListTrainings() ([]model.Training, error) {
	return s.Repo.FindAll()
}

func (s *TrainingService) GetTraining(id uint) (*model.Training, error) {
	t, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrTrainingNotFound)
	}
	return t, nil
}

func applyTraining(t *model.Training, req TrainingRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return util.ErrTitleRequired
	}
	status := req.Status
	if status == "" {
		status = model.TrainingNotStarted
	}
	if !status.Valid() {
		return util.ErrInvalidStatus
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return err
	}
	t.Title = title
	t.Description = req.Description
	t.Duration = req.Duration
	t.Image = req.Image
	t.Status = status
	t.Deadline = deadline
	return nil
}

func (s *TrainingService) CreateTraining(req TrainingRequest) (*model.Training, error) {
	t := &model.Training{}
	if err := applyTraining(t, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, fmt.Errorf("create training: %w", err)
	}
	return t, nil
}

func (s *TrainingService) UpdateTraining(id uint, req TrainingRequest) (*model.Training, error) {
	t, err := s.GetTraining(id)
	if err != nil {
		return nil, err
	}
	if err := applyTraining(t, req); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(t); err != nil {
		return nil, fmt.Errorf("update training: %w", err)
	}
	return t, nil
}

func (s *TrainingService) DeleteTraining(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return notFound(err, util.ErrTrainingNotFound)
	}
	return nil
}
