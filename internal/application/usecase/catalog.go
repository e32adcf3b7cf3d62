package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

const (
	coverFolder = "course-covers"
	videoFolder = "course-videos"

	// Lifetime of presigned playback URLs.
	playbackTTL = 15 * time.Minute
)

type FilePayload struct {
	Data        []byte
	ContentType string
}

type TopicInput struct {
	Title string
	Video *FilePayload
}

type CreateCourseInput struct {
	Title       string
	Description string
	Duration    string
	Price       float64
	CategoryID  uuid.UUID
	Image       *FilePayload
	Topics      []TopicInput
}

type CatalogUseCase struct {
	users       UserRepository
	catalog     CatalogRepository
	enrollments EnrollmentRepository
	media       MediaStore
}

func NewCatalogUseCase(users UserRepository, catalog CatalogRepository, enrollments EnrollmentRepository, media MediaStore) *CatalogUseCase {
	return &CatalogUseCase{
		users:       users,
		catalog:     catalog,
		enrollments: enrollments,
		media:       media,
	}
}

// requireAdmin re-reads the user from the store. The token is trusted for
// identity only; privilege must reflect the current admin flag, not a claim
// minted up to 7 days ago.
func (uc *CatalogUseCase) requireAdmin(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if !user.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, adminID uuid.UUID, name string) (*domain.Category, error) {
	if _, err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}

	category := &domain.Category{Name: name}
	if err := uc.catalog.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.catalog.ListCategories(ctx)
}

// CreateCourse runs the authoring flow: validate everything cheap first so a
// doomed request never uploads anything, then upload the cover and each
// complete topic's video in input order, then insert all records in one
// transaction. Topics missing a title or a video are skipped, not rejected.
func (uc *CatalogUseCase) CreateCourse(ctx context.Context, adminID uuid.UUID, in CreateCourseInput) (uuid.UUID, error) {
	admin, err := uc.requireAdmin(ctx, adminID)
	if err != nil {
		return uuid.Nil, err
	}

	if in.Title == "" {
		return uuid.Nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Description == "" {
		return uuid.Nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if in.Image == nil || len(in.Image.Data) == 0 {
		return uuid.Nil, fmt.Errorf("%w: cover image is required", domain.ErrValidation)
	}
	if in.Price < 0 {
		return uuid.Nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if _, err := uc.catalog.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return uuid.Nil, fmt.Errorf("%w: category not found", domain.ErrValidation)
		}
		return uuid.Nil, err
	}

	coverKey, err := uc.media.UploadPublic(ctx, coverFolder, in.Image.ContentType, in.Image.Data)
	if err != nil {
		return uuid.Nil, err
	}

	var topics []domain.Topic
	var videoKeys []string
	for _, t := range in.Topics {
		if t.Title == "" || t.Video == nil || len(t.Video.Data) == 0 {
			continue
		}
		key, err := uc.media.UploadPrivate(ctx, videoFolder, t.Video.ContentType, t.Video.Data)
		if err != nil {
			uc.cleanupUploads(ctx, coverKey, videoKeys)
			return uuid.Nil, err
		}
		videoKeys = append(videoKeys, key)
		topics = append(topics, domain.Topic{
			Title:    t.Title,
			VideoKey: key,
			Position: len(topics),
		})
	}

	course := &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		ImageKey:    coverKey,
		Duration:    in.Duration,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		UserID:      admin.ID,
	}
	if err := uc.catalog.CreateCourse(ctx, course, topics); err != nil {
		uc.cleanupUploads(ctx, coverKey, videoKeys)
		return uuid.Nil, err
	}

	return course.ID, nil
}

// cleanupUploads deletes media left orphaned by a failed authoring flow.
// Best effort: a failed delete is logged and otherwise ignored.
func (uc *CatalogUseCase) cleanupUploads(ctx context.Context, coverKey string, videoKeys []string) {
	if err := uc.media.Delete(ctx, coverKey, false); err != nil {
		log.Printf("cleanup: failed to delete cover %s: %v", coverKey, err)
	}
	for _, key := range videoKeys {
		if err := uc.media.Delete(ctx, key, true); err != nil {
			log.Printf("cleanup: failed to delete video %s: %v", key, err)
		}
	}
}

func (uc *CatalogUseCase) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := uc.catalog.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].ImageURL = uc.media.PublicURL(courses[i].ImageKey)
	}
	return courses, nil
}

// GetCourse returns the course's public metadata plus whether the viewer is
// enrolled. Detail pages are viewable anonymously; a nil viewer simply reads
// as not enrolled.
func (uc *CatalogUseCase) GetCourse(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*domain.Course, bool, error) {
	course, err := uc.catalog.GetCourse(ctx, id)
	if err != nil {
		return nil, false, err
	}
	course.ImageURL = uc.media.PublicURL(course.ImageKey)

	isEnrolled := false
	if viewer != nil {
		isEnrolled, err = uc.enrollments.Exists(ctx, *viewer, id)
		if err != nil {
			return nil, false, err
		}
	}
	return course, isEnrolled, nil
}

// Playback resolves a playable URL for a topic's video. Course metadata is
// public, but the video objects live in the private bucket: only enrolled
// viewers, the course owner, or an admin get a presigned URL.
func (uc *CatalogUseCase) Playback(ctx context.Context, viewerID, courseID, topicID uuid.UUID) (string, time.Time, error) {
	course, err := uc.catalog.GetCourse(ctx, courseID)
	if err != nil {
		return "", time.Time{}, err
	}

	var topic *domain.Topic
	for i := range course.Topics {
		if course.Topics[i].ID == topicID {
			topic = &course.Topics[i]
			break
		}
	}
	if topic == nil {
		return "", time.Time{}, domain.ErrTopicNotFound
	}

	allowed, err := uc.enrollments.Exists(ctx, viewerID, courseID)
	if err != nil {
		return "", time.Time{}, err
	}
	if !allowed && course.UserID != viewerID {
		viewer, err := uc.users.GetByID(ctx, viewerID)
		if err != nil || !viewer.IsAdmin {
			return "", time.Time{}, domain.ErrForbidden
		}
	}

	url, err := uc.media.PresignedURL(ctx, topic.VideoKey, playbackTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return url, time.Now().Add(playbackTTL), nil
}
