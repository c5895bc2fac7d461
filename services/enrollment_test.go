package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentLink(t *testing.T) {
	svc := &EnrollmentService{paymentBaseURL: "https://pay.edube.io"}

	link := svc.paymentLink("course-1", "enroll-9")

	assert.Equal(t, "https://pay.edube.io/pay/course-1?enrollment=enroll-9", link)
}
