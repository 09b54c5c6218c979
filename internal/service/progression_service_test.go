package service

import (
	"context"
	"testing"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgression(t *testing.T) (*ProgressionService, *CourseStore, *repository.ActivityLogRepository) {
	t.Helper()
	store, db := newStore(t)
	logs := repository.NewActivityLogRepository(db)
	return NewProgressionService(store, logs), store, logs
}

func TestProgression_CompleteLockedModuleRejected(t *testing.T) {
	svc, store, _ := newProgression(t)
	c := createCourse(t, store, "Emergency Response Procedures", 3)

	_, err := svc.CompleteModule(context.Background(), learner, c.ID, c.Modules[1].ID, 0)
	assert.ErrorIs(t, err, util.ErrModuleLocked)

	got, err := store.GetCourse(c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CompletionRate)
}

func TestProgression_VideoNeedsSelection(t *testing.T) {
	svc, store, _ := newProgression(t)
	c := createCourse(t, store, "Safety Equipment Training", 2)
	video := c.Modules[0].ID

	_, err := svc.CompleteModule(context.Background(), learner, c.ID, video, 0)
	assert.ErrorIs(t, err, util.ErrManualCompletionDenied)

	res, err := svc.CompleteModule(context.Background(), learner, c.ID, video, video)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 50, res.Course.CompletionRate)
}

func TestProgression_UnknownModuleIsNoop(t *testing.T) {
	svc, store, logs := newProgression(t)
	c := createCourse(t, store, "Anti-Harassment Training", 2)

	res, err := svc.CompleteModule(context.Background(), learner, c.ID, 31337, 0)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, res.CourseCompleted)
	assert.Zero(t, res.Course.CompletionRate)

	entries, err := logs.FindByUser(learner.ID(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProgression_CourseCompletedSignalledOnce(t *testing.T) {
	svc, store, logs := newProgression(t)
	c := createCourse(t, store, "Ethical Business Practices", 2) // video, quiz
	ctx := context.Background()

	res, err := svc.CompleteModule(ctx, learner, c.ID, c.Modules[0].ID, c.Modules[0].ID)
	require.NoError(t, err)
	assert.False(t, res.CourseCompleted)

	res, err = svc.CompleteModule(ctx, learner, c.ID, c.Modules[1].ID, 0)
	require.NoError(t, err)
	assert.True(t, res.CourseCompleted)
	assert.Equal(t, 100, res.Course.CompletionRate)

	res, err = svc.CompleteModule(ctx, learner, c.ID, c.Modules[1].ID, 0)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, res.CourseCompleted)

	n, err := logs.CountByActivity(model.ActivityCourseCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = logs.CountByActivity(model.ActivityModuleCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestProgression_CourseViewDefaultsToFirstAvailable(t *testing.T) {
	svc, store, _ := newProgression(t)
	c := createCourse(t, store, "Decision Making Processes", 3) // video, quiz, reading
	_, err := svc.CompleteModule(context.Background(), learner, c.ID, c.Modules[0].ID, c.Modules[0].ID)
	require.NoError(t, err)

	view, err := svc.CourseView(c.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, view.ActiveModule)
	assert.Equal(t, c.Modules[1].ID, view.ActiveModule.ID)
	assert.Equal(t, 1, view.CompletedCount)
	assert.Equal(t, 1.5, view.TotalHours)

	require.Len(t, view.Modules, 3)
	assert.False(t, view.Modules[0].CanComplete, "already completed")
	assert.True(t, view.Modules[1].CanComplete)
	assert.True(t, view.Modules[2].Locked)
	assert.False(t, view.Modules[2].CanComplete)
	assert.Equal(t, "Quiz", view.Modules[1].Label)

	require.NotNil(t, view.Previous)
	require.NotNil(t, view.Next)
	assert.Equal(t, c.Modules[0].ID, view.Previous.ID)
	assert.Equal(t, c.Modules[2].ID, view.Next.ID)

	_, err = svc.CourseView(999, 0)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestProgression_StartCourse(t *testing.T) {
	svc, store, logs := newProgression(t)
	c := createCourse(t, store, "Cloud Computing Fundamentals", 2)

	got, err := svc.StartCourse(context.Background(), learner, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.StartedAt)
	assert.Zero(t, got.CompletionRate)

	_, err = svc.StartCourse(context.Background(), learner, c.ID)
	require.NoError(t, err)

	n, err := logs.CountByActivity(model.ActivityCourseStarted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
