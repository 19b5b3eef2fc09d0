package model

import (
	"time"

	"israa-academy/internal/domain"

	"github.com/google/uuid"
)

// Comment is a course review left by a user. Likes is a plain counter; the
// admin panel can clear it when moderating.
type Comment struct {
	ID        string
	CourseID  string
	UserID    string
	Body      string
	Likes     int
	CreatedAt time.Time
}

func NewComment(courseID, userID, body string) (*Comment, error) {
	if courseID == "" || userID == "" || body == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Comment{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}, nil
}
