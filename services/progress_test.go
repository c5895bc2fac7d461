package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edube-platform/edube_api/model"
)

func TestProgressPercentRounding(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"empty curriculum", 0, 0, 0},
		{"nothing done", 0, 10, 0},
		{"one of three rounds down", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"exactly half", 1, 2, 50},
		{"all done", 3, 3, 100},
		{"more completed than total clamps nothing", 4, 3, 133},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progressPercent(tt.completed, tt.total))
		})
	}
}

func TestMapProgressToResponse(t *testing.T) {
	svc := &ProgressService{}
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	updated := created.Add(45 * time.Minute)

	resp := svc.mapProgressToResponse(&model.LessonProgress{
		ID:                   "lp-1",
		EnrollmentID:         "e1",
		LessonID:             "l1",
		IsCompleted:          true,
		CompletionPercentage: 100,
		TimeSpentMinutes:     12,
		CreatedAt:            created,
		UpdatedAt:            updated,
	})

	assert.Equal(t, "lp-1", resp.ID)
	assert.Equal(t, "e1", resp.EnrollmentID)
	assert.Equal(t, "l1", resp.LessonID)
	assert.True(t, resp.IsCompleted)
	assert.Equal(t, float64(100), resp.CompletionPercentage)
	assert.Equal(t, 12, resp.TimeSpentMinutes)
	assert.Equal(t, created, resp.CreatedAt)
	assert.Equal(t, updated, resp.UpdatedAt)
}

func TestCourseProgressCacheKey(t *testing.T) {
	svc := &ProgressService{}
	assert.Equal(t, "course_progress:e1", svc.courseProgressCacheKey("e1"))
}
