package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
	mediaStore   service.MediaStore
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	MediaStore   service.MediaStore
	Logger       *slog.Logger
}

// NewCategoryService creates a new category service instance
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		mediaStore:   params.MediaStore,
		logger:       params.Logger,
	}
}

// Create adds a category after checking its title is free. Title uniqueness is only
// enforced here, there is no unique index on it.
func (s *categoryService) Create(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Title is required"), "empty title")
	}

	isPublished := true
	if raw := strings.TrimSpace(input.IsPublished); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("isPublished must be a boolean"), err.Error())
		}
		isPublished = parsed
	}

	_, err := s.categoryRepo.FindByTitle(ctx, title)
	switch {
	case err == nil:
		return nil, errors.Wrap(domainerrors.ErrCategoryAlreadyExists, title)
	case !errors.Is(err, repository.ErrCategoryNotFound):
		return nil, errors.Wrap(err, "failed to check existing category")
	}

	if input.Avatar == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Avatar file is required"), "missing category avatar")
	}

	avatarURL, err := uploadImage(ctx, s.mediaStore, folderCategories, input.Avatar, "Error while uploading avatar")
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Title:       title,
		IsPublished: isPublished,
		Avatar:      avatarURL,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Category created",
		slog.String("category_id", category.ID.String()),
		slog.String("title", category.Title),
	)

	return category, nil
}
