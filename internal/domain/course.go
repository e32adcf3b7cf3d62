package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTopicNotFound    = errors.New("topic not found")
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	ImageKey    string    `gorm:"not null" json:"image"`
	Duration    string    `json:"duration"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null" json:"categoryId"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"owner,omitempty"`

	// Topics are owned by the course and removed with it.
	Topics []Topic `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"topics,omitempty"`

	// Display URL for the cover, derived from ImageKey. Not persisted.
	ImageURL string `gorm:"-" json:"imageUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

type Topic struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;index;not null" json:"courseId"`
	Title    string    `gorm:"not null" json:"title"`
	VideoKey string    `gorm:"not null" json:"video"`

	// Input order at authoring time; listing sorts by it.
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}
