package client

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// completionThreshold is the playback fraction past which a video lesson
// counts as completed. Fixed policy carried over from the web player.
const completionThreshold = 0.8

// PlaybackTracker maps raw player events onto lesson completions. A lesson
// fires at most once per session regardless of replays or seeking back and
// forth across the threshold.
type PlaybackTracker struct {
	reconciler *ProgressReconciler

	mu    sync.Mutex
	fired map[string]bool
}

func NewPlaybackTracker(reconciler *ProgressReconciler) *PlaybackTracker {
	return &PlaybackTracker{
		reconciler: reconciler,
		fired:      make(map[string]bool),
	}
}

// OnPlaybackPosition is called by the player on every position update.
// Crossing the completion threshold triggers the completion flow; failures
// are logged, not surfaced, and the guard stays set so replays within the
// session do not re-trigger.
func (t *PlaybackTracker) OnPlaybackPosition(ctx context.Context, enrollmentID, lessonID string, positionSeconds, durationSeconds float64) {
	if durationSeconds <= 0 {
		return
	}
	if positionSeconds/durationSeconds < completionThreshold {
		return
	}

	if !t.arm(lessonID) {
		return
	}

	if err := t.reconciler.CompleteLesson(ctx, enrollmentID, lessonID); err != nil {
		log.Printf("Lesson completion failed for %s: %v", lessonID, err)
	}
}

// MarkRead is the explicit completion action for document and reading
// lessons.
func (t *PlaybackTracker) MarkRead(ctx context.Context, enrollmentID, lessonID string) {
	if err := t.reconciler.CompleteLesson(ctx, enrollmentID, lessonID); err != nil {
		log.Printf("Mark-as-read failed for %s: %v", lessonID, err)
	}
}

// Reset clears the per-session trigger guards, typically on course switch or
// logout. A position event from a torn-down player arriving after Reset
// re-arms harmlessly: completion is idempotent downstream.
func (t *PlaybackTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fired = make(map[string]bool)
}

func (t *PlaybackTracker) arm(lessonID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired[lessonID] {
		return false
	}
	t.fired[lessonID] = true
	return true
}
