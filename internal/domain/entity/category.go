package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a taxonomy entry vendors are tagged with.
type Category struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"isPublished"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
