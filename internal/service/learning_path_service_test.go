package service

import (
	"testing"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathProgress(t *testing.T) {
	rates := func(rs ...int) []model.Course {
		out := make([]model.Course, len(rs))
		for i, r := range rs {
			out[i].CompletionRate = r
		}
		return out
	}

	cases := []struct {
		name     string
		courses  []model.Course
		progress int
		status   model.PathStatus
	}{
		{"empty", nil, 0, model.PathNotStarted},
		{"untouched", rates(0, 0), 0, model.PathNotStarted},
		{"rounded mean", rates(50, 0, 1), 17, model.PathInProgress},
		{"half rounds up", rates(1, 0), 1, model.PathInProgress},
		{"all done", rates(100, 100), 100, model.PathCompleted},
		{"almost", rates(100, 99), 100, model.PathCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			progress, status := PathProgress(tc.courses)
			assert.Equal(t, tc.progress, progress)
			assert.Equal(t, tc.status, status)
		})
	}
}

func newPathService(t *testing.T) (*LearningPathService, *CourseStore) {
	t.Helper()
	store, db := newStore(t)
	return NewLearningPathService(repository.NewLearningPathRepository(db), store.Repo), store
}

func TestLearningPath_CRUDAndFilter(t *testing.T) {
	svc, store := newPathService(t)
	a := createCourse(t, store, "Time Management", 2)
	b := createCourse(t, store, "Stress Management", 2)
	_, _, err := store.ApplyCompletion(a.ID, a.Modules[0].ID, a.Modules[0].ID)
	require.NoError(t, err)

	started, err := svc.CreatePath(PathRequest{Title: "Wellbeing", CourseIDs: []uint{a.ID, b.ID, a.ID}})
	require.NoError(t, err)
	require.Len(t, started.Courses, 2)
	assert.Equal(t, 25, started.Progress)
	assert.Equal(t, model.PathInProgress, started.Status)
	assert.NotEmpty(t, started.Image)

	empty, err := svc.CreatePath(PathRequest{Title: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, model.PathNotStarted, empty.Status)
	assert.NotNil(t, empty.Courses)

	_, err = svc.CreatePath(PathRequest{Title: "Broken", CourseIDs: []uint{a.ID, 999}})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = svc.CreatePath(PathRequest{Title: "  "})
	assert.ErrorIs(t, err, util.ErrTitleRequired)

	all, err := svc.ListPaths(PathFilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inProgress, err := svc.ListPaths(string(model.PathInProgress))
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "Wellbeing", inProgress[0].Title)

	_, err = svc.ListPaths("Paused")
	assert.ErrorIs(t, err, util.ErrInvalidStatus)

	updated, err := svc.UpdatePath(started.ID, PathRequest{Title: "Wellbeing 101"})
	require.NoError(t, err)
	assert.Equal(t, "Wellbeing 101", updated.Title)
	assert.Len(t, updated.Courses, 2, "nil course list keeps references")

	updated, err = svc.RemoveCourse(started.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, updated.Courses, 1)
	assert.Equal(t, model.PathNotStarted, updated.Status)

	updated, err = svc.AddCourse(started.ID, a.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Courses, 2)
	updated, err = svc.AddCourse(started.ID, a.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Courses, 2)

	_, err = svc.AddCourse(started.ID, 999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	require.NoError(t, svc.DeletePath(empty.ID))
	assert.ErrorIs(t, svc.DeletePath(empty.ID), util.ErrPathNotFound)
	_, err = svc.GetPath(empty.ID)
	assert.ErrorIs(t, err, util.ErrPathNotFound)
}

func TestLearningPath_DeletingCourseDropsReference(t *testing.T) {
	svc, store := newPathService(t)
	a := createCourse(t, store, "Networking Skills", 1)
	b := createCourse(t, store, "Creativity and Innovation", 1)
	p, err := svc.CreatePath(PathRequest{Title: "Soft Skills", CourseIDs: []uint{a.ID, b.ID}})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCourse(a.ID))

	got, err := svc.GetPath(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Courses, 1)
	assert.Equal(t, b.ID, got.Courses[0].ID)
}
