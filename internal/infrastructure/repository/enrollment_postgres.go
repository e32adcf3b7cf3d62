package repository

import (
	"context"
	"errors"

	"coursehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts the (user, course) pair. The composite primary key turns a
// concurrent duplicate enroll into a constraint violation instead of a race.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	result := r.db.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyEnrolled
		}
		return result.Error
	}
	return nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListCourses(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Preload("Category").
		Find(&courses).Error
	return courses, err
}
