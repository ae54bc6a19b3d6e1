package handler

import (
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
}

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{categoryUC: params.CategoryUC}
}

// CreateCategoryRequest is the multipart form of a new category
type CreateCategoryRequest struct {
	Title       string `json:"title" form:"title" validate:"notblank"`
	IsPublished string `json:"isPublished" form:"isPublished"`
}

// Create adds a category with its avatar
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	files := &uploads{}
	defer files.Close()

	avatar, err := files.open(c, "avatar")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	category, err := h.categoryUC.Create(c.Request().Context(), &usecase.CreateCategoryInput{
		Title:       req.Title,
		IsPublished: req.IsPublished,
		Avatar:      avatar,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// Update echoes the request body back. Category editing is not implemented yet.
func (h *CategoryHandler) Update(c echo.Context) error {
	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, body, "Category updated successfully")
}
