// Package persistence implements the workshop and image stores on GORM.
package persistence

import "time"

// Workshop is the database model for a workshop.
type Workshop struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (Workshop) TableName() string {
	return "workshops"
}

// Step is the database model for a workshop step. Annotations and
// highlighted lines are stored as JSON columns since they are only ever
// read and written as part of their step.
type Step struct {
	ID               string `gorm:"primaryKey"`
	WorkshopID       string `gorm:"index;not null"`
	Position         int    `gorm:"not null"`
	Title            string `gorm:"not null"`
	Description      string
	SourceCode       string
	Revision         int `gorm:"not null;default:1"`
	Annotations      string
	HighlightedLines string
	DiffWithPrevious bool
}

// TableName returns the table name for GORM.
func (Step) TableName() string {
	return "workshop_steps"
}

// Image is the database model for an annotation image.
type Image struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// TableName returns the table name for GORM.
func (Image) TableName() string {
	return "images"
}
