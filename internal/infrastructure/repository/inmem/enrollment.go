package inmem

import (
	"context"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

type EnrollmentRepository struct {
	db *DB
}

func NewEnrollmentRepository(db *DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, id := range r.db.enrolled[enrollment.UserID] {
		if id == enrollment.CourseID {
			return domain.ErrAlreadyEnrolled
		}
	}
	enrollment.CreatedAt = time.Now()
	r.db.enrolled[enrollment.UserID] = append(r.db.enrolled[enrollment.UserID], enrollment.CourseID)
	return nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, id := range r.db.enrolled[userID] {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *EnrollmentRepository) ListCourses(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.Course
	for _, id := range r.db.enrolled[userID] {
		if c, ok := r.db.courses[id]; ok {
			for _, cat := range r.db.categories {
				if cat.ID == c.CategoryID {
					c.Category = cat
					break
				}
			}
			out = append(out, c)
		}
	}
	return out, nil
}
