package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

// fakeStore is an in-memory ProgressStore that enforces the server's
// uniqueness rule on (enrollment, lesson) and records every mutation for
// assertions.
type fakeStore struct {
	mu sync.Mutex

	records map[string]dto.LessonProgressResponse
	byPair  map[string]string
	nextID  int

	aggregates []int
	aggIdx     int

	enrollment dto.EnrollmentResponse

	listCalls      int
	createCalls    int
	updateCalls    int
	aggregateCalls int

	patchedPercents []int
	patchedStatuses []string

	failCreateFor map[string]error
	failUpdate    error

	// next List call reports no records, simulating a read racing a
	// concurrent create
	staleListOnce bool
}

func newFakeStore(enrollmentID, status string) *fakeStore {
	return &fakeStore{
		records: make(map[string]dto.LessonProgressResponse),
		byPair:  make(map[string]string),
		enrollment: dto.EnrollmentResponse{
			ID:     enrollmentID,
			Status: status,
		},
		failCreateFor: make(map[string]error),
	}
}

func pairKey(enrollmentID, lessonID string) string {
	return enrollmentID + "/" + lessonID
}

func (f *fakeStore) ListLessonProgress(_ context.Context, enrollmentID string) ([]dto.LessonProgressResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++

	if f.staleListOnce {
		f.staleListOnce = false
		return nil, nil
	}

	var out []dto.LessonProgressResponse
	for _, record := range f.records {
		if record.EnrollmentID == enrollmentID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateLessonProgress(_ context.Context, req dto.CreateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++

	if err, ok := f.failCreateFor[req.Lesson.ID]; ok {
		return nil, err
	}

	key := pairKey(req.Enrollment.ID, req.Lesson.ID)
	if _, exists := f.byPair[key]; exists {
		return nil, &APIError{StatusCode: http.StatusConflict, Message: "duplicate progress record"}
	}

	f.nextID++
	record := dto.LessonProgressResponse{
		ID:                   fmt.Sprintf("lp-%d", f.nextID),
		EnrollmentID:         req.Enrollment.ID,
		LessonID:             req.Lesson.ID,
		IsCompleted:          req.IsCompleted,
		CompletionPercentage: req.CompletionPercentage,
		TimeSpentMinutes:     req.TimeSpentMinutes,
	}
	f.records[record.ID] = record
	f.byPair[key] = record.ID
	return &record, nil
}

func (f *fakeStore) UpdateLessonProgress(_ context.Context, progressID string, req dto.UpdateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++

	if f.failUpdate != nil {
		return nil, f.failUpdate
	}

	record, ok := f.records[progressID]
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "progress record not found"}
	}

	if req.IsCompleted != nil {
		record.IsCompleted = *req.IsCompleted
	}
	if req.CompletionPercentage != nil {
		record.CompletionPercentage = *req.CompletionPercentage
	}
	if req.TimeSpentMinutes != nil {
		record.TimeSpentMinutes = *req.TimeSpentMinutes
	}

	f.records[progressID] = record
	return &record, nil
}

func (f *fakeStore) CourseProgress(_ context.Context, enrollmentID string) (*dto.CourseProgressResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregateCalls++

	percent := 0
	if len(f.aggregates) > 0 {
		if f.aggIdx >= len(f.aggregates) {
			percent = f.aggregates[len(f.aggregates)-1]
		} else {
			percent = f.aggregates[f.aggIdx]
			f.aggIdx++
		}
	}

	return &dto.CourseProgressResponse{
		EnrollmentID:       enrollmentID,
		ProgressPercentage: percent,
	}, nil
}

func (f *fakeStore) UpdateEnrollmentProgress(_ context.Context, enrollmentID string, percentage int) (*dto.EnrollmentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.patchedPercents = append(f.patchedPercents, percentage)
	f.enrollment.ProgressPercentage = percentage

	enrollment := f.enrollment
	return &enrollment, nil
}

func (f *fakeStore) UpdateEnrollmentStatus(_ context.Context, enrollmentID, status string) (*dto.EnrollmentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.patchedStatuses = append(f.patchedStatuses, status)
	f.enrollment.Status = status

	enrollment := f.enrollment
	return &enrollment, nil
}

func (f *fakeStore) ListEnrollments(_ context.Context, learnerID string) ([]dto.EnrollmentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []dto.EnrollmentResponse{f.enrollment}, nil
}

func (f *fakeStore) recordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeStore) status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enrollment.Status
}

func newTestReconciler(store *fakeStore) *ProgressReconciler {
	session := NewSession()
	session.Init("test-token", dto.UserInfo{ID: "learner-1", Role: "learner"})
	return NewProgressReconciler(store, session)
}

func TestEnsureProgressRecordCreatesOnce(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentSaved)
	reconciler := newTestReconciler(store)

	for i := 0; i < 5; i++ {
		record, err := reconciler.EnsureProgressRecord(context.Background(), "e1", "l1")
		require.NoError(t, err)
		assert.False(t, record.IsCompleted)
		assert.Equal(t, "l1", record.LessonID)
	}

	assert.Equal(t, 1, store.recordCount())
	assert.Equal(t, 1, store.createCalls)
}

func TestEnsureProgressRecordSurvivesCreateRace(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	reconciler := newTestReconciler(store)

	// Another client created the row between our list and create
	_, err := store.CreateLessonProgress(context.Background(), dto.CreateLessonProgressRequest{
		Enrollment: dto.EntityRef{ID: "e1"},
		Lesson:     dto.EntityRef{ID: "l1"},
	})
	require.NoError(t, err)
	store.staleListOnce = true

	record, err := reconciler.EnsureProgressRecord(context.Background(), "e1", "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", record.LessonID)
	assert.Equal(t, 1, store.recordCount(), "conflict resolved to the surviving record")
}

func TestCompleteLessonIdempotent(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	store.aggregates = []int{50}
	reconciler := newTestReconciler(store)

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l1"))
	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l1"))

	assert.Equal(t, 1, store.recordCount())
	assert.Equal(t, 1, store.updateCalls, "second call must be a guarded no-op")
	assert.Equal(t, 1, store.aggregateCalls)
	assert.Equal(t, []int{50}, store.patchedPercents)
}

func TestCompleteLessonStatusProgression(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentSaved)
	store.aggregates = []int{33, 67, 100}
	reconciler := newTestReconciler(store)

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l1"))
	assert.Equal(t, shared.EnrollmentActive, store.status(), "first interaction activates a saved enrollment")

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l2"))
	assert.Equal(t, shared.EnrollmentActive, store.status(), "not completed before the aggregate reaches 100")

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l3"))
	assert.Equal(t, shared.EnrollmentCompleted, store.status())

	assert.Equal(t, []int{33, 67, 100}, store.patchedPercents)
}

func TestCompletedEnrollmentRegressesWhenContentGrows(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentCompleted)
	// A 4th lesson was added after completion, so the aggregate dropped
	store.aggregates = []int{75}
	reconciler := newTestReconciler(store)

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l4"))

	assert.Equal(t, shared.EnrollmentActive, store.status())
	assert.Equal(t, []string{shared.EnrollmentActive}, store.patchedStatuses)
}

func TestEnrollmentPatchCarriesServerAggregate(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	// Server says 40 even though locally 1 of 2 lessons (50%) is done
	store.aggregates = []int{40}
	reconciler := newTestReconciler(store)

	_, err := reconciler.EnsureProgressRecord(context.Background(), "e1", "l1")
	require.NoError(t, err)
	_, err = reconciler.EnsureProgressRecord(context.Background(), "e1", "l2")
	require.NoError(t, err)

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l1"))

	localPercent := reconciler.LocalPercent(2)
	assert.Equal(t, 50, localPercent)
	assert.Equal(t, []int{40}, store.patchedPercents, "only the server aggregate may be persisted")
}

func TestRefreshRebuildsCacheWithoutWrites(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	reconciler := newTestReconciler(store)

	for _, lessonID := range []string{"l1", "l2", "l3"} {
		_, err := store.CreateLessonProgress(context.Background(), dto.CreateLessonProgressRequest{
			Enrollment: dto.EntityRef{ID: "e1"},
			Lesson:     dto.EntityRef{ID: lessonID},
		})
		require.NoError(t, err)
	}
	createsBefore := store.createCalls

	snapshot, err := reconciler.Refresh(context.Background(), "e1")
	require.NoError(t, err)

	assert.Len(t, snapshot, 3)
	assert.Equal(t, createsBefore, store.createCalls)
	assert.Equal(t, 0, store.updateCalls)
	assert.Empty(t, store.patchedPercents)
}

func TestBackfillCompleteness(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	reconciler := newTestReconciler(store)

	lessons := []string{"l1", "l2", "l3", "l4", "l5"}
	require.NoError(t, reconciler.BackfillMissing(context.Background(), "e1", lessons))

	assert.Equal(t, len(lessons), store.recordCount())

	snapshot, err := reconciler.Refresh(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, snapshot, len(lessons))
	for _, lessonID := range lessons {
		record, ok := snapshot[lessonID]
		require.True(t, ok, "missing record for %s", lessonID)
		assert.False(t, record.IsCompleted)
		assert.Zero(t, record.CompletionPercentage)
	}
}

func TestBackfillToleratesPartialFailure(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	store.failCreateFor["l2"] = &APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	reconciler := newTestReconciler(store)

	err := reconciler.BackfillMissing(context.Background(), "e1", []string{"l1", "l2", "l3"})

	assert.Error(t, err)
	assert.Equal(t, 2, store.recordCount(), "remaining lessons still backfilled")
}

func TestCompleteLessonPublishesEnrollmentUpdated(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	store.aggregates = []int{50}
	reconciler := newTestReconciler(store)

	var events []EnrollmentUpdated
	cancel := reconciler.session.Bus().Subscribe(func(ev EnrollmentUpdated) {
		events = append(events, ev)
	})
	defer cancel()

	require.NoError(t, reconciler.CompleteLesson(context.Background(), "e1", "l1"))

	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].EnrollmentID)
}

func TestCompleteLessonKeepsOptimisticStateOnFailure(t *testing.T) {
	store := newFakeStore("e1", shared.EnrollmentActive)
	store.failUpdate = &APIError{StatusCode: http.StatusServiceUnavailable, Message: "backend down"}
	reconciler := newTestReconciler(store)

	err := reconciler.CompleteLesson(context.Background(), "e1", "l1")
	require.Error(t, err)
	assert.True(t, IsTransient(err))

	// Local cache still shows the lesson completed; a later refresh is the
	// recovery path
	cached, ok := reconciler.cached("l1")
	require.True(t, ok)
	assert.True(t, cached.IsCompleted)

	snapshot, refreshErr := reconciler.Refresh(context.Background(), "e1")
	require.NoError(t, refreshErr)
	assert.False(t, snapshot["l1"].IsCompleted, "server state wins after refresh")
}
