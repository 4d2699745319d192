package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sonsdetaville/sounds-api/internal/api/metrics"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type createCommentRequest struct {
	Sound   string `json:"sound"`
	Comment string `json:"comment"`
}

type updateCommentRequest struct {
	Comment string `json:"comment"`
}

// List handles GET /comments with optional sound, user, limit and offset
// filters.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        sound   query     string  false  "Filter by sound id"
// @Param        user    query     string  false  "Filter by author username or id"
// @Param        limit   query     int     false  "Page size, 1-100"
// @Param        offset  query     int     false  "Number of comments to skip"
// @Success      200     {array}   ports.CommentView
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.service.ListComments(c.Request().Context(), ports.ListCommentsParams{
		Sound:  c.QueryParam("sound"),
		User:   c.QueryParam("user"),
		Limit:  c.QueryParam("limit"),
		Offset: c.QueryParam("offset"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Create handles POST /comments and notifies the sound's owner.
//
// @Summary      Comment on a sound
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommentRequest  true  "Sound id and comment text"
// @Success      201   {object}  ports.CommentView
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	comment, err := h.service.CreateComment(c.Request().Context(), actor, req.Sound, req.Comment)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, comment)
}

// Update handles PATCH /comments/:id — author or admin only.
//
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Comment id"
// @Param        body  body      updateCommentRequest  true  "New comment text"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /comments/{id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateComment(c.Request().Context(), actor, c.Param("id"), req.Comment); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Comment successfully updated"})
}

// Delete handles DELETE /comments/:id — author or admin only.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Comment successfully deleted"})
}

// Options announces the verbs supported on the collection root.
func (h *CommentHandler) Options(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, "GET, POST, PATCH, DELETE, OPTIONS")
	return c.NoContent(http.StatusNoContent)
}
