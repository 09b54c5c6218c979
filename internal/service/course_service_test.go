package service

import (
	"testing"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/progression"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() CourseRequest {
	return CourseRequest{
		Title: "Data Privacy and Protection",
		Theme: model.ThemeCompliance,
		Modules: []ModuleInput{
			{Title: "Intro", Type: model.ModuleVideo, Duration: 20},
			{Title: "Rules", Type: model.ModuleReading, Duration: 40},
			{Title: "Check", Type: model.ModuleQuiz, Duration: 15},
		},
	}
}

func TestCourseService_CreateAssignsOrderAndImage(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)

	created, err := svc.CreateCourse(sampleRequest())
	require.NoError(t, err)
	require.Len(t, created.Modules, 3)
	for i, m := range created.Modules {
		assert.Equal(t, i+1, m.Order)
		assert.NotZero(t, m.ID)
	}
	assert.NotEmpty(t, created.Image)
	assert.Zero(t, created.CompletionRate)

	req := sampleRequest()
	req.StartDate = "15/03/2025"
	_, err = svc.CreateCourse(req)
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}

func TestCourseService_UpdateKeepsCompletionOfKnownModules(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	created, err := svc.CreateCourse(sampleRequest())
	require.NoError(t, err)

	first := created.Modules[0]
	_, _, err = store.ApplyCompletion(created.ID, first.ID, first.ID)
	require.NoError(t, err)

	req := sampleRequest()
	req.Title = "Data Privacy 2.0"
	req.Modules = []ModuleInput{
		{ID: first.ID, Title: "Intro (new cut)", Type: model.ModuleVideo, Duration: 25},
		{ID: 424242, Title: "Brand new", Type: model.ModuleAssignment, Duration: 30},
	}
	updated, err := svc.UpdateCourse(created.ID, req)
	require.NoError(t, err)

	require.Len(t, updated.Modules, 2)
	assert.Equal(t, first.ID, updated.Modules[0].ID)
	assert.True(t, updated.Modules[0].IsCompleted)
	assert.Equal(t, "Intro (new cut)", updated.Modules[0].Title)
	assert.NotEqual(t, uint(424242), updated.Modules[1].ID)
	assert.False(t, updated.Modules[1].IsCompleted)
	assert.Equal(t, 50, updated.CompletionRate)

	persisted, err := svc.GetCourse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Data Privacy 2.0", persisted.Title)
	assert.Len(t, persisted.Modules, 2)
}

func TestCourseService_UpdateUnknownCourse(t *testing.T) {
	store, _ := newStore(t)
	_, err := NewCourseService(store).UpdateCourse(77, sampleRequest())
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCourseService_UpdateRejectsRepeatedModuleID(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	c := createCourse(t, store, "Networking Skills", 3)

	req := sampleRequest()
	req.Modules = []ModuleInput{
		{ID: c.Modules[0].ID, Title: "a", Type: model.ModuleVideo},
		{ID: c.Modules[0].ID, Title: "a again", Type: model.ModuleVideo},
		{ID: c.Modules[1].ID, Title: "b", Type: model.ModuleQuiz},
	}
	_, err := svc.UpdateCourse(c.ID, req)
	assert.ErrorIs(t, err, util.ErrDuplicateModule)

	persisted, err := svc.GetCourse(c.ID)
	require.NoError(t, err)
	require.Len(t, persisted.Modules, 3)
	for i, m := range persisted.Modules {
		assert.Equal(t, i+1, m.Order)
	}
	assert.Equal(t, "Networking Skills", persisted.Title)

	// 会话已释放，后续编辑不受影响
	req.Modules = req.Modules[1:]
	_, err = svc.UpdateCourse(c.ID, req)
	assert.NoError(t, err)
}

func TestCourseService_UpdateKeepsStoredModuleOrder(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	c := createCourse(t, store, "Emotional Intelligence", 3)
	a, b, cc := c.Modules[0], c.Modules[1], c.Modules[2]

	_, _, err := store.ApplyCompletion(c.ID, a.ID, a.ID)
	require.NoError(t, err)

	req := sampleRequest()
	req.Modules = []ModuleInput{
		{Title: "Extra", Type: model.ModuleAssignment, Duration: 10},
		{ID: b.ID, Title: b.Title, Type: b.Type, Duration: b.Duration},
		{ID: cc.ID, Title: cc.Title, Type: cc.Type, Duration: cc.Duration},
		{ID: a.ID, Title: "Renamed", Type: a.Type, Duration: a.Duration},
	}
	updated, err := svc.UpdateCourse(c.ID, req)
	require.NoError(t, err)

	persisted, err := svc.GetCourse(c.ID)
	require.NoError(t, err)
	for _, got := range []model.Course{updated, persisted} {
		require.Len(t, got.Modules, 4)
		assert.Equal(t, []uint{a.ID, b.ID, cc.ID}, []uint{got.Modules[0].ID, got.Modules[1].ID, got.Modules[2].ID})
		assert.Equal(t, "Renamed", got.Modules[0].Title)
		assert.True(t, got.Modules[0].IsCompleted)
		assert.Equal(t, "Extra", got.Modules[3].Title)
		assert.Equal(t, 25, got.CompletionRate)
		for i, m := range got.Modules {
			assert.Equal(t, i+1, m.Order)
			if m.IsCompleted {
				assert.False(t, progression.IsModuleLocked(got, m.ID), "completed module %d is locked", m.ID)
			}
		}
	}
}

func TestCourseService_RemoveModuleRenumbersPersistedOrders(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	c := createCourse(t, store, "Change Management", 4)

	removed := c.Modules[1].ID
	updated, err := svc.RemoveModule(c.ID, removed)
	require.NoError(t, err)
	require.Len(t, updated.Modules, 3)

	persisted, err := svc.GetCourse(c.ID)
	require.NoError(t, err)
	orders := make([]int, 0, 3)
	ids := make([]uint, 0, 3)
	for _, m := range persisted.Modules {
		orders = append(orders, m.Order)
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, orders)
	assert.Equal(t, []uint{c.Modules[0].ID, c.Modules[2].ID, c.Modules[3].ID}, ids)

	_, err = svc.RemoveModule(c.ID, removed)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestCourseService_AddModuleAppends(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	c := createCourse(t, store, "Creativity and Innovation", 2)

	updated, err := svc.AddModule(c.ID, ModuleInput{Title: "Wrap-up", Type: model.ModuleQuiz, Duration: 10})
	require.NoError(t, err)
	require.Len(t, updated.Modules, 3)
	assert.Equal(t, "Wrap-up", updated.Modules[2].Title)
	assert.Equal(t, 3, updated.Modules[2].Order)

	_, err = svc.AddModule(c.ID, ModuleInput{Title: "Bad", Type: "podcast"})
	assert.ErrorIs(t, err, util.ErrInvalidModuleType)
}

func TestCourseService_ListFiltersAndGroups(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	createCourse(t, store, "Workplace Hazard Recognition", 1)
	_, err := store.CreateCourse(model.Course{Title: "Excel", Theme: model.ThemeTechnical, Status: model.CourseUpcoming})
	require.NoError(t, err)

	all, err := svc.ListCourses(repository.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := svc.ListCourses(repository.CourseFilter{Status: model.CourseUpcoming})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Excel", upcoming[0].Title)

	_, err = svc.ListCourses(repository.CourseFilter{Theme: "Cooking"})
	assert.ErrorIs(t, err, util.ErrInvalidTheme)

	groups, err := svc.CoursesByTheme()
	require.NoError(t, err)
	require.Len(t, groups, len(model.Themes))
	assert.Equal(t, model.ThemeSafety, groups[0].Theme)
	assert.Len(t, groups[0].Courses, 1)
	assert.Empty(t, groups[1].Courses)
}

func TestCourseService_PromoteDueCourses(t *testing.T) {
	store, _ := newStore(t)
	svc := NewCourseService(store)
	past := time.Now().AddDate(0, 0, -2)
	_, err := store.CreateCourse(model.Course{Title: "Due", Theme: model.ThemeSoftSkills, Status: model.CourseUpcoming, StartDate: &past})
	require.NoError(t, err)

	n, err := svc.PromoteDueCourses(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.PromoteDueCourses(time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}
