package usecase

import (
	"context"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

// Contracts the flows depend on. Postgres/S3 implementations live in
// internal/infrastructure; in-memory ones in repository/inmem back the tests.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	CreateCourse(ctx context.Context, course *domain.Course, topics []domain.Topic) error
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	CourseExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	ListCourses(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
}

type MediaStore interface {
	UploadPublic(ctx context.Context, folder, contentType string, data []byte) (string, error)
	UploadPrivate(ctx context.Context, folder, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string, private bool) error
	PublicURL(key string) string
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
