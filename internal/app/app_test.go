package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"training_portal_backend/internal/config"
	"training_portal_backend/internal/testutil"
	"training_portal_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Session.Backend = "database"
	cfg.Session.Prefix = "session"
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.RateLimit.MaxRequests = 1000
	cfg.RateLimit.WindowMinutes = 1
	cfg.CORS.AllowedOrigins = []string{"*"}

	return New(cfg, testutil.SeededDB(t), nil)
}

func do(t *testing.T, a *App, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func login(t *testing.T, a *App, username string) string {
	t.Helper()
	w, env := do(t, a, http.MethodPost, "/api/login", "", gin.H{"username": username, "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealthIsPublic(t *testing.T) {
	a := newTestApp(t)
	w, _ := do(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a := newTestApp(t)

	w, _ := do(t, a, http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, a, http.MethodGet, "/api/courses", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, a, http.MethodPost, "/api/login", "", gin.H{"username": "usuario", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLearnerCannotUseAdminRoutes(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a, "usuario")

	w, _ := do(t, a, http.MethodPost, "/api/admin/courses", token, gin.H{"title": "x", "theme": "Safety"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, a, http.MethodGet, "/api/admin/reports", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a, "usuario")

	w, _ := do(t, a, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, a, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, a, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseLifecycleAndCompletion(t *testing.T) {
	a := newTestApp(t)
	admin := login(t, a, "admin")
	learner := login(t, a, "usuario")

	w, env := do(t, a, http.MethodPost, "/api/admin/courses", admin, gin.H{
		"title": "Kubernetes Basics",
		"theme": "Technical",
		"courseModules": []gin.H{
			{"title": "Pods", "type": "video", "duration": 30},
			{"title": "Check", "type": "quiz", "duration": 10},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var course struct {
		ID      uint `json:"id"`
		Modules []struct {
			ID    uint `json:"id"`
			Order int  `json:"order"`
		} `json:"courseModules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &course))
	require.Len(t, course.Modules, 2)
	video, quiz := course.Modules[0].ID, course.Modules[1].ID

	w, _ = do(t, a, http.MethodPost, "/api/admin/courses", admin, gin.H{"title": "Bad", "theme": "Cooking"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	complete := func(moduleID, active uint) (*httptest.ResponseRecorder, envelope) {
		path := fmt.Sprintf("/api/courses/%d/modules/%d/complete", course.ID, moduleID)
		return do(t, a, http.MethodPost, path, learner, gin.H{"activeModuleId": active})
	}

	w, _ = complete(quiz, 0)
	assert.Equal(t, http.StatusConflict, w.Code, "locked")

	w, _ = complete(video, 0)
	assert.Equal(t, http.StatusConflict, w.Code, "video must be selected")

	w, env = complete(video, video)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Changed         bool `json:"changed"`
		CourseCompleted bool `json:"courseCompleted"`
		Course          struct {
			CompletionRate int `json:"completionRate"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Changed)
	assert.Equal(t, 50, res.Course.CompletionRate)

	w, env = complete(quiz, 0)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.CourseCompleted)
	assert.Equal(t, 100, res.Course.CompletionRate)

	w, env = complete(99999, 0)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.False(t, res.Changed)

	w, _ = do(t, a, http.MethodGet, fmt.Sprintf("/api/course-viewer?courseId=%d", course.ID), learner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, a, http.MethodDelete, fmt.Sprintf("/api/admin/courses/%d", course.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, a, http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), learner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportExportCSV(t *testing.T) {
	a := newTestApp(t)
	admin := login(t, a, "admin")

	w, _ := do(t, a, http.MethodGet, "/api/admin/reports/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Training,Status,Completion\n"))

	w, _ = do(t, a, http.MethodGet, "/api/admin/reports?period=year", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyConfigUpdatesRuntimeSettings(t *testing.T) {
	a := newTestApp(t)
	cfg := *a.Config
	cfg.Auth.LoginDelay = 2 * time.Millisecond
	cfg.RateLimit.MaxRequests = 1
	cfg.RateLimit.WindowMinutes = 60
	cfg.Log.Level = "warn"
	t.Cleanup(func() {
		reset := &config.Config{Log: config.LogConfig{Level: "info"}}
		require.NoError(t, logger.SetLevel(reset))
	})

	for _, cb := range a.configCallbacks {
		cb(&cfg)
	}
	assert.Equal(t, cfg.Auth.LoginDelay, a.services.auth.LoginDelay())
	assert.Equal(t, zap.WarnLevel, logger.Level())

	w, _ := do(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestUpdateCourseRejectsRepeatedModule(t *testing.T) {
	a := newTestApp(t)
	admin := login(t, a, "admin")

	w, env := do(t, a, http.MethodPost, "/api/admin/courses", admin, gin.H{
		"title": "Incident Reporting",
		"theme": "Safety",
		"courseModules": []gin.H{
			{"title": "Intro", "type": "quiz", "duration": 10},
			{"title": "Forms", "type": "assignment", "duration": 20},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var course struct {
		ID      uint `json:"id"`
		Modules []struct {
			ID uint `json:"id"`
		} `json:"courseModules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &course))
	first := course.Modules[0].ID

	w, _ = do(t, a, http.MethodPut, fmt.Sprintf("/api/admin/courses/%d", course.ID), admin, gin.H{
		"title": "Incident Reporting",
		"theme": "Safety",
		"courseModules": []gin.H{
			{"id": first, "title": "Intro", "type": "quiz"},
			{"id": first, "title": "Intro copy", "type": "quiz"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
