package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []EnrollmentUpdated
	bus.Subscribe(func(ev EnrollmentUpdated) { first = append(first, ev) })
	bus.Subscribe(func(ev EnrollmentUpdated) { second = append(second, ev) })

	bus.Publish(EnrollmentUpdated{EnrollmentID: "e1"})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, "e1", first[0].EnrollmentID)
}

func TestBusCancelStopsDelivery(t *testing.T) {
	bus := NewBus()

	var got []EnrollmentUpdated
	cancel := bus.Subscribe(func(ev EnrollmentUpdated) { got = append(got, ev) })

	bus.Publish(EnrollmentUpdated{EnrollmentID: "e1"})
	cancel()
	cancel() // double cancel is safe
	bus.Publish(EnrollmentUpdated{EnrollmentID: "e2"})

	assert.Len(t, got, 1)
}

func TestSessionLifecycle(t *testing.T) {
	session := NewSession()
	assert.False(t, session.Authenticated())
	assert.Empty(t, session.UserID())

	session.Init("tok", userInfoFixture())
	assert.True(t, session.Authenticated())
	assert.Equal(t, "u1", session.UserID())
	assert.Equal(t, "learner", session.Role())

	session.Clear()
	assert.False(t, session.Authenticated())
	assert.Nil(t, session.User())
}
