package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	courseListKey   = "courses:list"
	courseDetailKey = "course:detail:"
	courseListTTL   = 10 * time.Minute
	courseDetailTTL = 1 * time.Hour
)

type CatalogRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCatalogRepository(db *gorm.DB, rdb *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, rdb: rdb}
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCourse inserts the course and its topics in one transaction so a
// failed topic insert never leaves a half-created course behind.
func (r *CatalogRepository) CreateCourse(ctx context.Context, course *domain.Course, topics []domain.Topic) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		if len(topics) == 0 {
			return nil
		}
		for i := range topics {
			topics[i].CourseID = course.ID
		}
		return tx.Create(&topics).Error
	})
	if err != nil {
		return err
	}

	course.Topics = topics

	// Drop stale cache entries so the new course shows up immediately.
	r.rdb.Del(ctx, courseListKey, courseDetailKey+course.ID.String())
	return nil
}

// ListCourses returns summaries with their category, newest first.
// Cached for 10 minutes since the catalog changes rarely.
func (r *CatalogRepository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	val, err := r.rdb.Get(ctx, courseListKey).Result()
	if err == nil {
		var cached []domain.Course
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached, nil
		}
	}

	var courses []domain.Course
	err = r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(courses); err == nil {
		r.rdb.Set(ctx, courseListKey, data, courseListTTL)
	}

	return courses, nil
}

// GetCourse returns the full course: category, topics in authoring order,
// and the owning user. Cached for 1 hour, invalidated on writes.
func (r *CatalogRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := courseDetailKey + id.String()

	val, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var c domain.Course
		if json.Unmarshal([]byte(val), &c) == nil {
			return &c, nil
		}
	}

	var course domain.Course
	err = r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if data, err := json.Marshal(course); err == nil {
		r.rdb.Set(ctx, key, data, courseDetailTTL)
	}

	return &course, nil
}

func (r *CatalogRepository) CourseExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
