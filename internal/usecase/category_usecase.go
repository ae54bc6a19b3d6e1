package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// CreateCategoryInput defines the data required to create a category.
// IsPublished is the raw form value; empty means published.
type CreateCategoryInput struct {
	Title       string
	IsPublished string
	Avatar      *FileUpload
}

// CategoryUsecase defines the category taxonomy operations.
type CategoryUsecase interface {
	Create(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
}
