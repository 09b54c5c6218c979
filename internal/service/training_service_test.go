package service

import (
	"testing"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/testutil"
	"training_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingService_CRUD(t *testing.T) {
	svc := NewTrainingService(repository.NewTrainingRepository(testutil.NewDB(t)))

	created, err := svc.CreateTraining(TrainingRequest{Title: "  Workplace Safety ", Duration: "2h", Deadline: "2025-04-01"})
	require.NoError(t, err)
	assert.Equal(t, "Workplace Safety", created.Title)
	assert.Equal(t, model.TrainingNotStarted, created.Status)
	require.NotNil(t, created.Deadline)
	assert.Equal(t, "2025-04-01", created.Deadline.Format(util.DateFormat))

	updated, err := svc.UpdateTraining(created.ID, TrainingRequest{Title: "Workplace Safety", Status: model.TrainingCompleted})
	require.NoError(t, err)
	assert.Equal(t, model.TrainingCompleted, updated.Status)
	assert.Nil(t, updated.Deadline)

	list, err := svc.ListTrainings()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteTraining(created.ID))
	_, err = svc.GetTraining(created.ID)
	assert.ErrorIs(t, err, util.ErrTrainingNotFound)
	assert.ErrorIs(t, svc.DeleteTraining(created.ID), util.ErrTrainingNotFound)
}

func TestTrainingService_Validation(t *testing.T) {
	svc := NewTrainingService(repository.NewTrainingRepository(testutil.NewDB(t)))

	cases := []struct {
		name string
		req  TrainingRequest
		want error
	}{
		{"blank title", TrainingRequest{Title: "   "}, util.ErrTitleRequired},
		{"unknown status", TrainingRequest{Title: "Ethics", Status: "Paused"}, util.ErrInvalidStatus},
		{"bad deadline", TrainingRequest{Title: "Ethics", Deadline: "01/04/2025"}, util.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTraining(tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := svc.UpdateTraining(404, TrainingRequest{Title: "Ethics"})
	assert.ErrorIs(t, err, util.ErrTrainingNotFound)
}
