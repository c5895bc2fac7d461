package client

import (
	"context"
	"errors"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

// ProgressReconciler keeps per-lesson progress records and the owning
// enrollment's aggregate percentage consistent with learner interaction. The
// remote store is the source of truth; a per-enrollment in-memory map serves
// as a read cache for the currently open course.
//
// Rapid interleaved calls for the same enrollment race on the enrollment
// write-back; the later response wins. Since the written value is always the
// server-computed aggregate, state converges once in-flight calls settle.
type ProgressReconciler struct {
	store   ProgressStore
	session *Session

	mu           sync.Mutex
	enrollmentID string
	cache        map[string]dto.LessonProgressResponse
}

func NewProgressReconciler(store ProgressStore, session *Session) *ProgressReconciler {
	return &ProgressReconciler{
		store:   store,
		session: session,
		cache:   make(map[string]dto.LessonProgressResponse),
	}
}

// EnsureProgressRecord returns the progress record for (enrollment, lesson),
// creating a fresh not-completed one when none exists. The cache is rebuilt
// from the store on every call. When a concurrent create wins the race, the
// surviving record is fetched and returned.
func (r *ProgressReconciler) EnsureProgressRecord(ctx context.Context, enrollmentID, lessonID string) (*dto.LessonProgressResponse, error) {
	records, err := r.store.ListLessonProgress(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	r.rebuildCache(enrollmentID, records)

	if record, ok := r.cached(lessonID); ok {
		return record, nil
	}

	created, err := r.store.CreateLessonProgress(ctx, dto.CreateLessonProgressRequest{
		Enrollment: dto.EntityRef{ID: enrollmentID},
		Lesson:     dto.EntityRef{ID: lessonID},
	})
	if err != nil {
		if IsConflict(err) {
			// Lost the create race; the store kept the first record
			return r.refetchRecord(ctx, enrollmentID, lessonID)
		}
		return nil, err
	}

	r.cacheRecord(enrollmentID, *created)
	return created, nil
}

// CompleteLesson marks a lesson completed and reconciles the enrollment:
// fetch the server-side aggregate, write it back onto the enrollment, and
// adjust the status. Already-completed lessons are a guarded no-op.
//
// The local cache is updated optimistically before the remote writes; a
// remote failure is returned but never rolls the cache back. A later
// EnsureProgressRecord or Refresh is the recovery path.
func (r *ProgressReconciler) CompleteLesson(ctx context.Context, enrollmentID, lessonID string) error {
	record, err := r.EnsureProgressRecord(ctx, enrollmentID, lessonID)
	if err != nil {
		return err
	}

	if record.IsCompleted {
		return nil
	}

	optimistic := *record
	optimistic.IsCompleted = true
	optimistic.CompletionPercentage = 100
	r.cacheRecord(enrollmentID, optimistic)

	completed := true
	fullPercent := float64(100)
	updated, err := r.store.UpdateLessonProgress(ctx, record.ID, dto.UpdateLessonProgressRequest{
		IsCompleted:          &completed,
		CompletionPercentage: &fullPercent,
	})
	if err != nil {
		log.Printf("Failed to persist completion for lesson %s: %v", lessonID, err)
		return err
	}
	r.cacheRecord(enrollmentID, *updated)

	aggregate, err := r.store.CourseProgress(ctx, enrollmentID)
	if err != nil {
		log.Printf("Failed to fetch aggregate progress for enrollment %s: %v", enrollmentID, err)
		return err
	}

	// Only the server-computed aggregate is ever written back
	enrollment, err := r.store.UpdateEnrollmentProgress(ctx, enrollmentID, aggregate.ProgressPercentage)
	if err != nil {
		log.Printf("Failed to write back progress for enrollment %s: %v", enrollmentID, err)
		return err
	}

	if next := nextStatus(enrollment.Status, aggregate.ProgressPercentage); next != "" {
		if _, err := r.store.UpdateEnrollmentStatus(ctx, enrollmentID, next); err != nil {
			log.Printf("Failed to update status for enrollment %s: %v", enrollmentID, err)
			return err
		}
	}

	r.session.Bus().Publish(EnrollmentUpdated{EnrollmentID: enrollmentID})
	return nil
}

// Refresh refetches all records for the enrollment and rebuilds the cache.
// The returned map is a snapshot the caller owns.
func (r *ProgressReconciler) Refresh(ctx context.Context, enrollmentID string) (map[string]dto.LessonProgressResponse, error) {
	records, err := r.store.ListLessonProgress(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	r.rebuildCache(enrollmentID, records)

	snapshot := make(map[string]dto.LessonProgressResponse, len(records))
	for _, record := range records {
		snapshot[record.LessonID] = record
	}
	return snapshot, nil
}

// LocalPercent derives a display-only percentage from the cached records.
// This value is never persisted; the enrollment write-back always carries the
// server-side aggregate instead.
func (r *ProgressReconciler) LocalPercent(totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}

	r.mu.Lock()
	completed := 0
	for _, record := range r.cache {
		if record.IsCompleted {
			completed++
		}
	}
	r.mu.Unlock()

	return int(math.Round(float64(completed) / float64(totalLessons) * 100))
}

// BackfillMissing creates a record for every lesson in the curriculum that
// has none yet, so each lesson has a row before the learner first interacts
// with it. One failed creation does not abort the rest; individual errors
// are logged and joined into the return value.
func (r *ProgressReconciler) BackfillMissing(ctx context.Context, enrollmentID string, lessonIDs []string) error {
	if _, err := r.Refresh(ctx, enrollmentID); err != nil {
		return err
	}

	var errs []error
	for _, lessonID := range lessonIDs {
		if _, ok := r.cached(lessonID); ok {
			continue
		}
		if _, err := r.EnsureProgressRecord(ctx, enrollmentID, lessonID); err != nil {
			log.Printf("Backfill failed for lesson %s: %v", lessonID, err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// nextStatus picks the status transition an aggregate percentage implies, or
// "" when no change is needed. A completed enrollment drops back to active
// when new content pushes the aggregate under 100.
func nextStatus(current string, aggregatePercent int) string {
	switch {
	case aggregatePercent >= 100:
		if current != shared.EnrollmentCompleted {
			return shared.EnrollmentCompleted
		}
	case current == shared.EnrollmentCompleted:
		return shared.EnrollmentActive
	case current == shared.EnrollmentSaved:
		return shared.EnrollmentActive
	}
	return ""
}

func (r *ProgressReconciler) rebuildCache(enrollmentID string, records []dto.LessonProgressResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enrollmentID = enrollmentID
	r.cache = make(map[string]dto.LessonProgressResponse, len(records))
	for _, record := range records {
		r.cache[record.LessonID] = record
	}
}

func (r *ProgressReconciler) cached(lessonID string) (*dto.LessonProgressResponse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.cache[lessonID]
	if !ok {
		return nil, false
	}
	return &record, true
}

func (r *ProgressReconciler) cacheRecord(enrollmentID string, record dto.LessonProgressResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A stray response for a previously open enrollment must not pollute
	// the current cache
	if r.enrollmentID != enrollmentID {
		return
	}
	r.cache[record.LessonID] = record
}

func (r *ProgressReconciler) refetchRecord(ctx context.Context, enrollmentID, lessonID string) (*dto.LessonProgressResponse, error) {
	records, err := r.store.ListLessonProgress(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	r.rebuildCache(enrollmentID, records)

	if record, ok := r.cached(lessonID); ok {
		return record, nil
	}
	return nil, errors.New("progress record missing after duplicate-create conflict")
}
