package usecase

import (
	"context"
	"fmt"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

// DefaultProcessingDelay imitates the latency of a real payment provider.
// No money moves anywhere; the checkout is a stub in front of Enroll.
const DefaultProcessingDelay = 1500 * time.Millisecond

type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

type EnrollmentUseCase struct {
	catalog         CatalogRepository
	enrollments     EnrollmentRepository
	media           MediaStore
	processingDelay time.Duration
}

func NewEnrollmentUseCase(catalog CatalogRepository, enrollments EnrollmentRepository, media MediaStore, processingDelay time.Duration) *EnrollmentUseCase {
	return &EnrollmentUseCase{
		catalog:         catalog,
		enrollments:     enrollments,
		media:           media,
		processingDelay: processingDelay,
	}
}

// Enroll links the user to the course. The insert itself is the duplicate
// check: the composite key rejects a second enrollment atomically.
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, userID, courseID uuid.UUID) error {
	exists, err := uc.catalog.CourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrCourseNotFound
	}

	return uc.enrollments.Create(ctx, &domain.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	})
}

func (uc *EnrollmentUseCase) ListEnrolled(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	courses, err := uc.enrollments.ListCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].ImageURL = uc.media.PublicURL(courses[i].ImageKey)
	}
	return courses, nil
}

// Checkout validates the card shape, waits out the simulated processing
// delay, and enrolls the user. There is no payment gateway behind it.
func (uc *EnrollmentUseCase) Checkout(ctx context.Context, userID, courseID uuid.UUID, card CardDetails) error {
	if err := validateCard(card); err != nil {
		return err
	}

	time.Sleep(uc.processingDelay)

	return uc.Enroll(ctx, userID, courseID)
}

func validateCard(card CardDetails) error {
	if len(digits(card.Number)) != 16 {
		return fmt.Errorf("%w: card number must be 16 digits", domain.ErrValidation)
	}
	if len(digits(card.Expiry)) != 4 {
		return fmt.Errorf("%w: expiry must be in MMYY format", domain.ErrValidation)
	}
	if len(digits(card.CVV)) != 3 || len(card.CVV) != 3 {
		return fmt.Errorf("%w: CVV must be 3 digits", domain.ErrValidation)
	}
	return nil
}

func digits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
