package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

func TestVideoCompletionScenario(t *testing.T) {
	// One enrollment: L1 is a 120s video, L2 a document, no progress yet.
	// Crossing 96s (80% of 120s) completes L1 and patches the enrollment
	// with the mocked aggregate.
	store := newFakeStore("e1", shared.EnrollmentSaved)
	store.aggregates = []int{50}
	reconciler := newTestReconciler(store)
	tracker := NewPlaybackTracker(reconciler)

	tracker.OnPlaybackPosition(context.Background(), "e1", "L1", 95, 120)
	assert.Equal(t, 0, store.recordCount(), "below threshold, nothing persisted")

	tracker.OnPlaybackPosition(context.Background(), "e1", "L1", 96, 120)

	require.Equal(t, 1, store.recordCount())
	snapshot, err := reconciler.Refresh(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, snapshot["L1"].IsCompleted)
	assert.Equal(t, 1, store.aggregateCalls)
	assert.Equal(t, []int{50}, store.patchedPercents)
	assert.Equal(t, shared.EnrollmentActive, store.status(), "50 < 100 keeps the enrollment active")
}

func TestPlaybackThresholdFiresOncePerSession(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	store.aggregates = []int{50}
	reconciler := newTestReconciler(store)
	tracker := NewPlaybackTracker(reconciler)

	// Replaying past the threshold repeatedly must not re-trigger
	for i := 0; i < 4; i++ {
		tracker.OnPlaybackPosition(context.Background(), "e1", "l1", 110, 120)
	}

	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, 1, store.aggregateCalls)
}

func TestPlaybackIgnoresZeroDuration(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	reconciler := newTestReconciler(store)
	tracker := NewPlaybackTracker(reconciler)

	tracker.OnPlaybackPosition(context.Background(), "e1", "l1", 30, 0)

	assert.Equal(t, 0, store.recordCount())
}

func TestMarkReadOnCompletedLessonIsNoOp(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	reconciler := newTestReconciler(store)
	tracker := NewPlaybackTracker(reconciler)

	created, err := store.CreateLessonProgress(context.Background(), dto.CreateLessonProgressRequest{
		Enrollment:           dto.EntityRef{ID: "e1"},
		Lesson:               dto.EntityRef{ID: "L2"},
		IsCompleted:          true,
		CompletionPercentage: 100,
	})
	require.NoError(t, err)
	require.True(t, created.IsCompleted)

	tracker.MarkRead(context.Background(), "e1", "L2")

	assert.Equal(t, 0, store.updateCalls)
	assert.Equal(t, 0, store.aggregateCalls)
	assert.Empty(t, store.patchedPercents)
}

func TestResetReArmsTriggers(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	store.aggregates = []int{50}
	reconciler := newTestReconciler(store)
	tracker := NewPlaybackTracker(reconciler)

	tracker.OnPlaybackPosition(context.Background(), "e1", "l1", 110, 120)
	tracker.Reset()
	tracker.OnPlaybackPosition(context.Background(), "e1", "l1", 110, 120)

	// Second trigger runs but the completion guard keeps it a no-op
	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, 1, store.recordCount())
}
