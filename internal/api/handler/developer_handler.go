package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/api/metrics"
	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

const foundedLayout = "2006-01-02"

// DeveloperHandler handles HTTP requests for developer resources.
type DeveloperHandler struct {
	developers ports.DeveloperService
	games      ports.GameService
	comments   ports.CommentService
}

func NewDeveloperHandler(developers ports.DeveloperService, games ports.GameService, comments ports.CommentService) *DeveloperHandler {
	return &DeveloperHandler{developers: developers, games: games, comments: comments}
}

type createDeveloperRequest struct {
	Name         string `form:"name"         validate:"required"`
	Founder      string `form:"founder"      validate:"required"`
	Founded      string `form:"founded"      validate:"required"`
	Headquarters string `form:"headquarters" validate:"required"`
	OwnerUserID  string `form:"userId"       validate:"required"`
	Description  string `form:"description"`
}

type updateDeveloperRequest struct {
	Name         *string `form:"name"`
	Founder      *string `form:"founder"`
	Founded      *string `form:"founded"`
	Headquarters *string `form:"headquarters"`
	OwnerUserID  *string `form:"userId"`
	Description  *string `form:"description"`
}

// Create handles POST /developers — admin only.
//
// @Summary      Register a new developer studio
// @Tags         developers
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name          formData  string  true  "Studio name"
// @Param        founder       formData  string  true  "Founder"
// @Param        founded       formData  string  true  "Founding date (YYYY-MM-DD)"
// @Param        headquarters  formData  string  true  "Headquarters"
// @Param        userId        formData  string  true  "Owning user id"
// @Param        description   formData  string  false "Description"
// @Param        photo         formData  file    true  "Studio photo"
// @Success      201           {object}  domain.Developer
// @Failure      400           {object}  map[string]string
// @Failure      403           {object}  map[string]string
// @Failure      404           {object}  map[string]string
// @Router       /developers [post]
func (h *DeveloperHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createDeveloperRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	founded, err := time.Parse(foundedLayout, req.Founded)
	if err != nil {
		return domain.NewValidationError("founded", "must be a date in YYYY-MM-DD form")
	}

	photo, err := readPhoto(c)
	if err != nil {
		return err
	}

	dev, err := h.developers.Create(c.Request().Context(), principal, ports.CreateDeveloperInput{
		Name:         req.Name,
		Founder:      req.Founder,
		Founded:      founded,
		Headquarters: req.Headquarters,
		OwnerUserID:  req.OwnerUserID,
		Photo:        photo,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("developer", "create").Inc()
	return c.JSON(http.StatusCreated, dev)
}

// Get handles GET /developers/:id with optional ?expand=user.
//
// @Summary      Get a developer by id
// @Tags         developers
// @Produce      json
// @Param        id      path      string  true   "Developer id"
// @Param        expand  query     string  false  "Comma-separated relations to expand (user)"
// @Success      200     {object}  ports.DeveloperDetail
// @Failure      404     {object}  map[string]string
// @Router       /developers/{id} [get]
func (h *DeveloperHandler) Get(c echo.Context) error {
	expand := ports.ParseExpand(c.QueryParam("expand"))
	detail, err := h.developers.Get(c.Request().Context(), c.Param("id"), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// List handles GET /developers with optional ?expand=user.
//
// @Summary      List all developers
// @Tags         developers
// @Produce      json
// @Param        expand  query   string  false  "Comma-separated relations to expand (user)"
// @Success      200     {array} ports.DeveloperDetail
// @Router       /developers [get]
func (h *DeveloperHandler) List(c echo.Context) error {
	expand := ports.ParseExpand(c.QueryParam("expand"))
	details, err := h.developers.List(c.Request().Context(), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// ListGames handles GET /developers/:id/games.
//
// @Summary      List a developer's games
// @Tags         developers
// @Produce      json
// @Param        id   path      string  true  "Developer id"
// @Success      200  {array}   domain.Game
// @Failure      404  {object}  map[string]string
// @Router       /developers/{id}/games [get]
func (h *DeveloperHandler) ListGames(c echo.Context) error {
	games, err := h.games.ListByDeveloper(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

// ListComments handles GET /developers/:id/comments — every comment across
// the developer's games.
//
// @Summary      List comments across a developer's games
// @Tags         developers
// @Produce      json
// @Param        id   path      string  true  "Developer id"
// @Success      200  {array}   domain.Comment
// @Failure      404  {object}  map[string]string
// @Router       /developers/{id}/comments [get]
func (h *DeveloperHandler) ListComments(c echo.Context) error {
	comments, err := h.comments.ListByDeveloper(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// GetNestedComment handles GET /developers/:id/games/:gameId/comments/:commentId,
// resolving the comment through the full ownership chain.
//
// @Summary      Get a comment through its developer and game
// @Tags         developers
// @Produce      json
// @Param        id         path      string  true  "Developer id"
// @Param        gameId     path      string  true  "Game id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  domain.Comment
// @Failure      404        {object}  map[string]string
// @Router       /developers/{id}/games/{gameId}/comments/{commentId} [get]
func (h *DeveloperHandler) GetNestedComment(c echo.Context) error {
	comment, err := h.comments.GetNested(c.Request().Context(), c.Param("id"), c.Param("gameId"), c.Param("commentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Update handles PUT /developers/:id — owner or admin; reassigning the
// owner requires admin.
//
// @Summary      Update a developer
// @Tags         developers
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Developer id"
// @Success      200 {object}  domain.Developer
// @Failure      400 {object}  map[string]string
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /developers/{id} [put]
func (h *DeveloperHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateDeveloperRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateDeveloperInput{
		Name:         req.Name,
		Founder:      req.Founder,
		Headquarters: req.Headquarters,
		OwnerUserID:  req.OwnerUserID,
		Description:  req.Description,
	}
	if req.Founded != nil {
		founded, err := time.Parse(foundedLayout, *req.Founded)
		if err != nil {
			return domain.NewValidationError("founded", "must be a date in YYYY-MM-DD form")
		}
		input.Founded = &founded
	}

	photo, err := readPhoto(c)
	if err != nil {
		return err
	}
	input.Photo = photo

	dev, err := h.developers.Update(c.Request().Context(), principal, c.Param("id"), input)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("developer", "update").Inc()
	return c.JSON(http.StatusOK, dev)
}

// Delete handles DELETE /developers/:id — owner or admin, cascading to
// games and their comments.
//
// @Summary      Delete a developer and its dependents
// @Tags         developers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Developer id"
// @Success      200  {object}  domain.CascadeResult
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /developers/{id} [delete]
func (h *DeveloperHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.developers.Delete(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		metrics.CascadeFailuresTotal.WithLabelValues("developer").Inc()
		return err
	}

	metrics.ObserveCascade(result.Users, result.Developers, result.Games, result.Comments)
	return c.JSON(http.StatusOK, result)
}
