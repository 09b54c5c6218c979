package repository

import (
	"testing"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCourseRepository_ReplaceDropsStaleModules(t *testing.T) {
	repo := NewCourseRepository(testutil.NewDB(t))
	course := &model.Course{
		Title: "Advanced Excel",
		Theme: model.ThemeTechnical,
		Modules: []model.CourseModule{
			{Title: "Pivot", Type: model.ModuleVideo, Order: 1},
			{Title: "Macros", Type: model.ModuleReading, Order: 2},
			{Title: "Quiz", Type: model.ModuleQuiz, Order: 3},
		},
	}
	require.NoError(t, repo.Create(course))

	course.Modules = []model.CourseModule{course.Modules[2], {Title: "Lookup", Type: model.ModuleAssignment}}
	course.Modules[0].Order = 1
	course.Modules[1].Order = 2
	require.NoError(t, repo.Replace(course))

	got, err := repo.FindByID(course.ID)
	require.NoError(t, err)
	require.Len(t, got.Modules, 2)
	assert.Equal(t, "Quiz", got.Modules[0].Title)
	assert.Equal(t, "Lookup", got.Modules[1].Title)

	course.Modules = nil
	require.NoError(t, repo.Replace(course))
	got, err = repo.FindByID(course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Modules)
}

func TestCourseRepository_DeleteMissing(t *testing.T) {
	repo := NewCourseRepository(testutil.NewDB(t))
	assert.ErrorIs(t, repo.Delete(12), gorm.ErrRecordNotFound)
}
