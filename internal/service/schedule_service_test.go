package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchedule(t *testing.T) (*ScheduleService, *CourseStore, *repository.TrainingRepository) {
	t.Helper()
	store, db := newStore(t)
	trainings := repository.NewTrainingRepository(db)
	svc := NewScheduleService(trainings, repository.NewLearningPathRepository(db), store, repository.NewKVRepository(db))
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local) }
	return svc, store, trainings
}

func TestSchedule_CustomEventsPerUser(t *testing.T) {
	svc, _, _ := newSchedule(t)
	ctx := context.Background()
	other := model.LearnerPrincipal{UserID: 9, Username: "other"}

	first, err := svc.AddCustomEvent(ctx, learner, EventRequest{Title: "Team sync", Date: "2025-03-12"})
	require.NoError(t, err)
	assert.Equal(t, model.EventTypeCustom, first.Type)
	assert.NotEmpty(t, first.ID)
	_, err = svc.AddCustomEvent(ctx, learner, EventRequest{Title: "Review", Date: "2025-03-11"})
	require.NoError(t, err)

	events, err := svc.Events(ctx, learner)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Review", events[0].Title, "sorted by date")

	events, err = svc.Events(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, events)

	require.NoError(t, svc.DeleteCustomEvent(ctx, learner, first.ID))
	assert.ErrorIs(t, svc.DeleteCustomEvent(ctx, learner, first.ID), util.ErrEventNotFound)

	events, err = svc.Events(ctx, learner)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Review", events[0].Title)
}

func TestSchedule_ConcurrentAddsKeepEveryEvent(t *testing.T) {
	svc, _, _ := newSchedule(t)
	ctx := context.Background()

	const n = 12
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddCustomEvent(ctx, learner, EventRequest{Title: fmt.Sprintf("Event %d", i), Date: "2025-03-12"})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	events, err := svc.Events(ctx, learner)
	require.NoError(t, err)
	assert.Len(t, events, n)
}

func TestSchedule_AddCustomEventValidation(t *testing.T) {
	svc, _, _ := newSchedule(t)
	ctx := context.Background()

	_, err := svc.AddCustomEvent(ctx, learner, EventRequest{Title: " ", Date: "2025-03-12"})
	assert.ErrorIs(t, err, util.ErrEventTitleRequired)
	_, err = svc.AddCustomEvent(ctx, learner, EventRequest{Title: "x", Date: "12.03.2025"})
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}

func TestSchedule_DerivedEvents(t *testing.T) {
	svc, store, trainings := newSchedule(t)
	deadline := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	require.NoError(t, trainings.Create(&model.Training{Title: "Workplace Safety", Status: model.TrainingInProgress, Deadline: &deadline}))
	require.NoError(t, trainings.Create(&model.Training{Title: "Leadership Essentials", Status: model.TrainingNotStarted}))
	start := time.Date(2025, 3, 20, 0, 0, 0, 0, time.Local)
	_, err := store.CreateCourse(model.Course{Title: "Fire Safety", Theme: model.ThemeSafety, Status: model.CourseUpcoming, StartDate: &start})
	require.NoError(t, err)
	createCourse(t, store, "Active course", 1)

	events, err := svc.Events(context.Background(), learner)
	require.NoError(t, err)
	require.Len(t, events, 3)

	byTitle := map[string]model.CalendarEvent{}
	for _, e := range events {
		byTitle[e.Title] = e
	}
	assert.Equal(t, "2025-04-01", byTitle["Workplace Safety"].Date)
	assert.Equal(t, "2025-03-17", byTitle["Leadership Essentials"].Date)
	assert.Equal(t, "2025-03-20", byTitle["Fire Safety"].Date)
	assert.Equal(t, model.EventTypeCourse, byTitle["Fire Safety"].Type)
	assert.Equal(t, "Leadership Essentials", events[0].Title)
}
