package service

import (
	"testing"
	"time"
	"training_portal_backend/internal/config"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var learner = model.LearnerPrincipal{UserID: 2, Username: "usuario", Email: "usuario@sistema.com"}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Session.Backend = "database"
	cfg.Session.Prefix = "session"
	return cfg
}

func newStore(t *testing.T) (*CourseStore, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewCourseStore(repository.NewCourseRepository(db)), db
}

// createCourse 依次为 video, quiz, reading, assignment 循环
func createCourse(t *testing.T, store *CourseStore, title string, modules int) model.Course {
	t.Helper()
	types := []model.ModuleType{model.ModuleVideo, model.ModuleQuiz, model.ModuleReading, model.ModuleAssignment}
	c := model.Course{Title: title, Theme: model.ThemeSafety}
	for i := 0; i < modules; i++ {
		c.Modules = append(c.Modules, model.CourseModule{
			Title:    title + " part",
			Type:     types[i%len(types)],
			Duration: 30,
			Order:    i + 1,
		})
	}
	created, err := store.CreateCourse(c)
	require.NoError(t, err)
	return created
}
