package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edube-platform/edube_api/dto"
)

func userInfoFixture() dto.UserInfo {
	return dto.UserInfo{ID: "u1", Username: "ana_learns", Role: "learner"}
}

func envelope(data interface{}) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"code":    200,
		"message": "ok",
		"data":    data,
	})
	return body
}

func newTestStore(t *testing.T, handler http.HandlerFunc) (*RestStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	session := NewSession()
	session.Init("test-token", userInfoFixture())
	return NewRestStore(server.URL, session), server
}

func TestRestStoreRequiresAuth(t *testing.T) {
	called := false
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	store.session.Clear()

	_, err := store.ListLessonProgress(context.Background(), "e1")

	assert.ErrorIs(t, err, ErrMissingAuth)
	assert.False(t, called, "no network call without a token")
}

func TestRestStoreSendsBearerAndPath(t *testing.T) {
	var gotPath, gotAuth string
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelope(dto.LessonProgressCollectionResponse{
			Records: []dto.LessonProgressResponse{{ID: "lp-1", LessonID: "l1", EnrollmentID: "e1"}},
			Total:   1,
		}))
	})

	records, err := store.ListLessonProgress(context.Background(), "e1")

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/lesson-progress/enrollment/e1", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, records, 1)
	assert.Equal(t, "l1", records[0].LessonID)
}

func TestRestStoreCreateBodyShape(t *testing.T) {
	var gotBody map[string]interface{}
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write(envelope(dto.LessonProgressResponse{ID: "lp-1", EnrollmentID: "e1", LessonID: "l1"}))
	})

	created, err := store.CreateLessonProgress(context.Background(), dto.CreateLessonProgressRequest{
		Enrollment: dto.EntityRef{ID: "e1"},
		Lesson:     dto.EntityRef{ID: "l1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "lp-1", created.ID)

	enrollment, ok := gotBody["enrollment"].(map[string]interface{})
	require.True(t, ok, "enrollment must be a nested ref")
	assert.Equal(t, "e1", enrollment["id"])
	lesson, ok := gotBody["lesson"].(map[string]interface{})
	require.True(t, ok, "lesson must be a nested ref")
	assert.Equal(t, "l1", lesson["id"])
}

func TestRestStoreEnrollmentProgressPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(envelope(dto.EnrollmentResponse{ID: "e1", ProgressPercentage: 40}))
	})

	updated, err := store.UpdateEnrollmentProgress(context.Background(), "e1", 40)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/v1/enrollments/e1/progress", gotPath)
	assert.Equal(t, float64(40), gotBody["progress_percentage"])
	assert.Equal(t, 40, updated.ProgressPercentage)
}

func TestRestStoreMapsNotFound(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":404,"message":"Enrollment not found"}`))
	})

	_, err := store.CourseProgress(context.Background(), "missing")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestRestStoreMapsConflict(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":409,"message":"duplicate progress record"}`))
	})

	_, err := store.CreateLessonProgress(context.Background(), dto.CreateLessonProgressRequest{
		Enrollment: dto.EntityRef{ID: "e1"},
		Lesson:     dto.EntityRef{ID: "l1"},
	})

	assert.True(t, IsConflict(err))
}

func TestRestStoreTransientServerError(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"code":502,"message":"upstream down"}`))
	})

	_, err := store.ListLessonProgress(context.Background(), "e1")

	assert.True(t, IsTransient(err))
}

func TestRestStoreCourseLessons(t *testing.T) {
	var gotPath string
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(envelope([]dto.LessonResponse{
			{ID: "l1", ContentType: "video", DurationSeconds: 120},
			{ID: "l2", ContentType: "document"},
		}))
	})

	lessons, err := store.CourseLessons(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/courses/c1/lessons", gotPath)
	require.Len(t, lessons, 2)
	assert.Equal(t, 120, lessons[0].DurationSeconds)
}
