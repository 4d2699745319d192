package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for sound categories.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// List handles GET /categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Category
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Get handles GET /categories/:name.
//
// @Summary      Get a category by name
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Category name"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Router       /categories/{name} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.GetCategory(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Create handles POST /categories — admin only.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category name and color"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.service.CreateCategory(c.Request().Context(), actor, req.Name, req.Color)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, category)
}

// Delete handles DELETE /categories/:name — admin only. Returns the deleted
// category.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Category name"
// @Success      200   {object}  domain.Category
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /categories/{name} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	category, err := h.service.DeleteCategory(c.Request().Context(), actor, c.Param("name"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, category)
}

// Options announces the verbs supported on the collection root.
func (h *CategoryHandler) Options(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, "GET, POST, DELETE, OPTIONS")
	return c.NoContent(http.StatusNoContent)
}
