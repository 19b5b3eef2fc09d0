package model

import (
	"time"

	"israa-academy/internal/domain"

	"github.com/google/uuid"
)

type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

// Course is a sellable course with Arabic and English copy. Slug is the
// public identifier used by activation codes and grants.
type Course struct {
	ID            string
	Slug          string
	Title         string
	TitleAR       string
	Description   string
	DescriptionAR string
	PriceIQD      int64
	Level         CourseLevel
	Published     bool
	CreatedAt     time.Time
}

// NewCourse validates and constructs a course.
func NewCourse(slug, title, titleAR string, priceIQD int64, level CourseLevel) (*Course, error) {
	if slug == "" || title == "" || priceIQD < 0 {
		return nil, domain.ErrInvalidArgument
	}
	switch level {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
	default:
		return nil, domain.ErrInvalidArgument
	}
	return &Course{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     title,
		TitleAR:   titleAR,
		PriceIQD:  priceIQD,
		Level:     level,
		CreatedAt: time.Now(),
	}, nil
}

func (c *Course) IsZero() bool { return c == nil || c.ID == "" }
