package util

import (
	"strings"
	"testing"
	"time"
	"training_portal_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTripKeepsRole(t *testing.T) {
	admin := model.AdminPrincipal{UserID: 1, Username: "admin", Email: "admin@sistema.com"}
	token, err := GenerateJWT(admin, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	p := claims.Principal()
	assert.Equal(t, model.Admin, p.Role())
	assert.IsType(t, model.AdminPrincipal{}, p)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTLearnerCarriesDepartment(t *testing.T) {
	learner := model.LearnerPrincipal{UserID: 2, Username: "usuario", Department: "Sales"}
	token, err := GenerateJWT(learner, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	got, ok := claims.Principal().(model.LearnerPrincipal)
	require.True(t, ok)
	assert.Equal(t, "Sales", got.Department)
}

func TestPlaceholderImage(t *testing.T) {
	got := PlaceholderImage("Fire Safety and Prevention", "Safety", 0, 0)
	assert.Equal(t, "https://placehold.co/400x150/red/white?text=Fire+Safety+and+Prevention", got)

	got = PlaceholderImage(strings.Repeat("x", 40), "Unknown", 300, 200)
	assert.True(t, strings.HasPrefix(got, "https://placehold.co/300x200/gray/white?text="))
	assert.Equal(t, 30, len(strings.TrimPrefix(got, "https://placehold.co/300x200/gray/white?text=")))

	assert.Equal(t, "https://cdn/x.png", CourseImageURL("https://cdn/x.png", "t", "Safety"))
	assert.Contains(t, CourseImageURL("", "Time Management", "Soft Skills"), "/purple/")
}

func TestParseProbeOutput(t *testing.T) {
	out := `{"streams":[{"codec_type":"audio"},{"codec_type":"video","width":1280,"height":720}],
		"format":{"duration":"601.5","size":"2048","format_name":"mov,mp4,m4a"}}`
	info, err := parseProbeOutput(out, 1)
	require.NoError(t, err)

	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, "mov", info.Format)
	assert.Equal(t, int64(2048), info.Size)
	assert.Equal(t, 11, info.DurationMinutes())

	var empty *VideoInfo
	assert.Equal(t, 0, empty.DurationMinutes())
}
