package usecase

import (
	"context"
	"testing"

	"coursehub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	admin := e.createUser(t, "Root", "root@x.com", true)
	learner := e.createUser(t, "Ana", "ana@x.com", false)
	category := e.createCategory(t, admin, "Programming")
	courseID := e.createCourse(t, admin, category.ID)

	before, err := e.enrollment.ListEnrolled(ctx, learner.ID)
	require.NoError(t, err)
	assert.Empty(t, before)

	require.NoError(t, e.enrollment.Enroll(ctx, learner.ID, courseID))

	after, err := e.enrollment.ListEnrolled(ctx, learner.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, courseID, after[0].ID)
}

func TestEnrollTwice(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	admin := e.createUser(t, "Root", "root@x.com", true)
	learner := e.createUser(t, "Ana", "ana@x.com", false)
	category := e.createCategory(t, admin, "Programming")
	courseID := e.createCourse(t, admin, category.ID)

	require.NoError(t, e.enrollment.Enroll(ctx, learner.ID, courseID))
	err := e.enrollment.Enroll(ctx, learner.ID, courseID)
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	e := newEnv()

	learner := e.createUser(t, "Ana", "ana@x.com", false)

	err := e.enrollment.Enroll(context.Background(), learner.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCheckoutValidatesCard(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	admin := e.createUser(t, "Root", "root@x.com", true)
	learner := e.createUser(t, "Ana", "ana@x.com", false)
	category := e.createCategory(t, admin, "Programming")
	courseID := e.createCourse(t, admin, category.ID)

	good := CardDetails{Number: "4242 4242 4242 4242", Expiry: "12/30", CVV: "123"}

	for name, card := range map[string]CardDetails{
		"short number": {Number: "4242", Expiry: good.Expiry, CVV: good.CVV},
		"bad expiry":   {Number: good.Number, Expiry: "12/3", CVV: good.CVV},
		"bad cvv":      {Number: good.Number, Expiry: good.Expiry, CVV: "12"},
	} {
		err := e.enrollment.Checkout(ctx, learner.ID, courseID, card)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}

	enrolled, err := e.enrollment.ListEnrolled(ctx, learner.ID)
	require.NoError(t, err)
	assert.Empty(t, enrolled, "rejected payments must not enroll")

	require.NoError(t, e.enrollment.Checkout(ctx, learner.ID, courseID, good))

	enrolled, err = e.enrollment.ListEnrolled(ctx, learner.ID)
	require.NoError(t, err)
	assert.Len(t, enrolled, 1)
}

func TestCheckoutOfEnrolledCourse(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	admin := e.createUser(t, "Root", "root@x.com", true)
	learner := e.createUser(t, "Ana", "ana@x.com", false)
	category := e.createCategory(t, admin, "Programming")
	courseID := e.createCourse(t, admin, category.ID)

	card := CardDetails{Number: "4242424242424242", Expiry: "1230", CVV: "123"}
	require.NoError(t, e.enrollment.Checkout(ctx, learner.ID, courseID, card))

	err := e.enrollment.Checkout(ctx, learner.ID, courseID, card)
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
}
