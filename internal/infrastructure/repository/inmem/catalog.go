package inmem

import (
	"context"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

type CatalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	r.db.categories = append(r.db.categories, *category)
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	// Newest first, mirroring the postgres ordering.
	out := make([]domain.Category, 0, len(r.db.categories))
	for i := len(r.db.categories) - 1; i >= 0; i-- {
		out = append(out, r.db.categories[i])
	}
	return out, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, c := range r.db.categories {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *CatalogRepository) CreateCourse(ctx context.Context, course *domain.Course, topics []domain.Topic) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.CreatedAt = time.Now()
	for i := range topics {
		if topics[i].ID == uuid.Nil {
			topics[i].ID = uuid.New()
		}
		topics[i].CourseID = course.ID
		topics[i].CreatedAt = time.Now()
	}

	r.db.courses[course.ID] = *course
	r.db.topics[course.ID] = topics
	r.db.courseOrder = append(r.db.courseOrder, course.ID)
	course.Topics = topics
	return nil
}

func (r *CatalogRepository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Course, 0, len(r.db.courseOrder))
	for i := len(r.db.courseOrder) - 1; i >= 0; i-- {
		c := r.db.courses[r.db.courseOrder[i]]
		c.Category = r.categoryByID(c.CategoryID)
		out = append(out, c)
	}
	return out, nil
}

func (r *CatalogRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	c.Category = r.categoryByID(c.CategoryID)
	c.Topics = append([]domain.Topic(nil), r.db.topics[id]...)
	if owner, ok := r.db.users[c.UserID]; ok {
		c.User = &owner
	}
	return &c, nil
}

func (r *CatalogRepository) CourseExists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, ok := r.db.courses[id]
	return ok, nil
}

// caller must hold db.mu
func (r *CatalogRepository) categoryByID(id uuid.UUID) domain.Category {
	for _, c := range r.db.categories {
		if c.ID == id {
			return c
		}
	}
	return domain.Category{}
}
