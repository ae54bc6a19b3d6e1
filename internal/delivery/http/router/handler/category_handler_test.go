package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	mockUsecase "bazaar/internal/mocks/usecase"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_Create(t *testing.T) {
	categoryUC := mockUsecase.NewMockCategoryUsecase(t)
	h := NewCategoryHandler(CategoryHandlerParams{CategoryUC: categoryUC})
	e := newTestEcho()

	req := multipartRequest(t, http.MethodPost, "/api/v1/category/create",
		map[string]string{"title": "Street Food", "isPublished": "false"},
		map[string][]byte{"avatar": []byte("\x89PNG\r\n\x1a\n")})
	rec := httptest.NewRecorder()

	categoryUC.On("Create", mock.Anything, mock.MatchedBy(func(in *usecase.CreateCategoryInput) bool {
		return in.Title == "Street Food" && in.IsPublished == "false" && in.Avatar != nil
	})).Return(&entity.Category{ID: uuid.New(), Title: "Street Food"}, nil)

	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Category created successfully", decodeEnvelope(t, rec).Message)
}

func TestCategoryHandler_Create_Conflict(t *testing.T) {
	categoryUC := mockUsecase.NewMockCategoryUsecase(t)
	h := NewCategoryHandler(CategoryHandlerParams{CategoryUC: categoryUC})
	e := newTestEcho()

	req := multipartRequest(t, http.MethodPost, "/api/v1/category/create", map[string]string{"title": "Bakery"}, nil)
	rec := httptest.NewRecorder()

	categoryUC.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrCategoryAlreadyExists, "Bakery"))

	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Category already exists", decodeEnvelope(t, rec).Message)
}

func TestCategoryHandler_Update_EchoesBody(t *testing.T) {
	h := NewCategoryHandler(CategoryHandlerParams{CategoryUC: mockUsecase.NewMockCategoryUsecase(t)})
	e := newTestEcho()

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/v1/category/update", `{"title":"Bakery","isPublished":true}`)

	require.NoError(t, h.Update(e.NewContext(req, rec)))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"Bakery","isPublished":true}`, string(body.Data))
}
