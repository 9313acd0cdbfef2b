package models

import (
	"time"
)

// Course status values written by the import flow
const (
	CourseStatusNew       = "new"
	CourseStatusGenerated = "generated"
)

// Course defines the course model based on the 'courses' table
type Course struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Introduction to Algorithms"`
	OwnerID   *int64    `json:"owner" db:"owner_id" example:"7"`                            // Nil when created by an anonymous actor
	GID       *string   `json:"gid,omitempty" db:"gid" example:"1AbCdEfGhIjKlMnOpQrStUv"` // External presentation reference
	Status    string    `json:"status" db:"status" example:"generated"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasOwner reports whether the course was created by an authenticated user
func (c *Course) HasOwner() bool {
	return c != nil && c.OwnerID != nil
}

// NeedsImport reports whether the course references external content that must be imported
func (c *Course) NeedsImport() bool {
	return c != nil && c.ID > 0 && c.GID != nil && *c.GID != ""
}
