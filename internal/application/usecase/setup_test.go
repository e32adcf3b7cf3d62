package usecase

import (
	"context"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/repository/inmem"
	"coursehub/internal/infrastructure/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type env struct {
	db     *inmem.DB
	users  *inmem.UserRepository
	media  *inmem.MediaStore
	tokens *security.TokenManager
	hasher *security.PasswordHasher

	auth       *AuthUseCase
	catalog    *CatalogUseCase
	enrollment *EnrollmentUseCase
}

func newEnv() *env {
	db := inmem.NewDB()
	users := inmem.NewUserRepository(db)
	catalogRepo := inmem.NewCatalogRepository(db)
	enrollmentRepo := inmem.NewEnrollmentRepository(db)
	media := inmem.NewMediaStore()

	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenManager("test-secret")

	return &env{
		db:         db,
		users:      users,
		media:      media,
		tokens:     tokens,
		hasher:     hasher,
		auth:       NewAuthUseCase(users, hasher, tokens),
		catalog:    NewCatalogUseCase(users, catalogRepo, enrollmentRepo, media),
		enrollment: NewEnrollmentUseCase(catalogRepo, enrollmentRepo, media, 0),
	}
}

func (e *env) createUser(t *testing.T, name, email string, admin bool) *domain.User {
	t.Helper()

	hash, err := e.hasher.Hash("pw123")
	require.NoError(t, err)

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
		IsAdmin:  admin,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *env) createCategory(t *testing.T, admin *domain.User, name string) *domain.Category {
	t.Helper()

	category, err := e.catalog.CreateCategory(context.Background(), admin.ID, name)
	require.NoError(t, err)
	return category
}

func payload(data string) *FilePayload {
	return &FilePayload{Data: []byte(data), ContentType: "application/octet-stream"}
}

func (e *env) createCourse(t *testing.T, admin *domain.User, categoryID uuid.UUID, topics ...TopicInput) uuid.UUID {
	t.Helper()

	id, err := e.catalog.CreateCourse(context.Background(), admin.ID, CreateCourseInput{
		Title:       "Go Basics",
		Description: "From zero to gopher",
		Duration:    "6h",
		Price:       49.99,
		CategoryID:  categoryID,
		Image:       payload("cover-bytes"),
		Topics:      topics,
	})
	require.NoError(t, err)
	return id
}
