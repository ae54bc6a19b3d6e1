package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)
	if categoryM.ID == uuid.Nil {
		categoryM.ID = uuid.New()
	}

	// Select("*") so an explicit IsPublished=false is not replaced by the column default.
	if err := repo.db.WithContext(ctx).Select("*").Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCategoryAlreadyExists.WrapMessage("unique constraint violated on insert")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindByID retrieves a category by its ID.
func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return repo.first(repo.db.WithContext(ctx).Where("id = ?", id), "failed to find category by id")
}

// FindByTitle retrieves a category by its exact title.
func (repo *categoryRepository) FindByTitle(ctx context.Context, title string) (*entity.Category, error) {
	return repo.first(repo.db.WithContext(ctx).Where("title = ?", title), "failed to find category by title")
}

func (repo *categoryRepository) first(query *gorm.DB, msg string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := query.First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, msg)
	}

	return toCategoryDomain(&categoryM), nil
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:          data.ID,
		Title:       data.Title,
		IsPublished: data.IsPublished,
		Avatar:      data.Avatar,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:          data.ID,
		Title:       data.Title,
		IsPublished: data.IsPublished,
		Avatar:      data.Avatar,
	}
}
