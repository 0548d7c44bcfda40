package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/api/metrics"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment resources.
type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	Title  string `json:"title"  validate:"required"`
	Body   string `json:"body"   validate:"required"`
	GameID string `json:"gameId" validate:"required"`
}

type updateCommentRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// Create handles POST /comments. The author is always the acting
// principal; a caller-supplied author id is ignored.
//
// @Summary      Post a comment on a game
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        comment  body      createCommentRequest  true  "Comment"
// @Success      201      {object}  domain.Comment
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Create(c.Request().Context(), principal, ports.CreateCommentInput{
		Title:  req.Title,
		Body:   req.Body,
		GameID: req.GameID,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("comment", "create").Inc()
	return c.JSON(http.StatusCreated, comment)
}

// Get handles GET /comments/:id with optional ?expand=game,user.
//
// @Summary      Get a comment by id
// @Tags         comments
// @Produce      json
// @Param        id      path      string  true   "Comment id"
// @Param        expand  query     string  false  "Comma-separated relations to expand (game, user)"
// @Success      200     {object}  ports.CommentDetail
// @Failure      404     {object}  map[string]string
// @Router       /comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	expand := ports.ParseExpand(c.QueryParam("expand"))
	detail, err := h.comments.Get(c.Request().Context(), c.Param("id"), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// List handles GET /comments with optional ?expand=game,user.
//
// @Summary      List all comments
// @Tags         comments
// @Produce      json
// @Param        expand  query   string  false  "Comma-separated relations to expand (game, user)"
// @Success      200     {array} ports.CommentDetail
// @Router       /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	expand := ports.ParseExpand(c.QueryParam("expand"))
	details, err := h.comments.List(c.Request().Context(), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// Update handles PUT /comments/:id — author or admin; only title and body
// may change.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Comment id"
// @Param        comment  body      updateCommentRequest  true  "Fields to change"
// @Success      200      {object}  domain.Comment
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	comment, err := h.comments.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateCommentInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("comment", "update").Inc()
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /comments/:id — author or admin.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("comment", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
