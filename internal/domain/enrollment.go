package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

// Enrollment links a user to a purchased course. The composite primary key
// makes a duplicate enrollment a unique-constraint conflict instead of a
// check-then-insert race.
type Enrollment struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}
