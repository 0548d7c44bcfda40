package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/api/metrics"
	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// GameHandler handles HTTP requests for game resources.
type GameHandler struct {
	games    ports.GameService
	comments ports.CommentService
}

func NewGameHandler(games ports.GameService, comments ports.CommentService) *GameHandler {
	return &GameHandler{games: games, comments: comments}
}

type createGameRequest struct {
	Title             string `form:"title"             validate:"required"`
	Genre             string `form:"genre"             validate:"required"`
	Platform          string `form:"platform"          validate:"required"`
	ControllerSupport string `form:"controllerSupport"`
	Language          string `form:"language"          validate:"required"`
	PlayerType        string `form:"playerType"        validate:"required"`
	DeveloperID       string `form:"developerId"       validate:"required"`
	Description       string `form:"description"`
}

type updateGameRequest struct {
	Title             *string `form:"title"`
	Genre             *string `form:"genre"`
	Platform          *string `form:"platform"`
	ControllerSupport *string `form:"controllerSupport"`
	Language          *string `form:"language"`
	PlayerType        *string `form:"playerType"`
	DeveloperID       *string `form:"developerId"`
	Description       *string `form:"description"`
}

func parseControllerSupport(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError("controllerSupport", "must be true or false")
	}
	return v, nil
}

// Create handles POST /games — admins, or devs owning the developer.
//
// @Summary      Register a new game
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title              formData  string  true   "Title"
// @Param        genre              formData  string  true   "Genre (case-exact, e.g. Action)"
// @Param        platform           formData  string  true   "Platform (case-exact, e.g. Pc)"
// @Param        controllerSupport  formData  bool    false  "Controller support"
// @Param        language           formData  string  true   "Language"
// @Param        playerType         formData  string  true   "Player type (case-exact, e.g. Single_player)"
// @Param        developerId        formData  string  true   "Owning developer id"
// @Param        description        formData  string  false  "Description"
// @Param        photo              formData  file    true   "Cover photo"
// @Success      201  {object}  domain.Game
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /games [post]
func (h *GameHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	controllerSupport, err := parseControllerSupport(req.ControllerSupport)
	if err != nil {
		return err
	}

	photo, err := readPhoto(c)
	if err != nil {
		return err
	}

	game, err := h.games.Create(c.Request().Context(), principal, ports.CreateGameInput{
		Title:             req.Title,
		Genre:             req.Genre,
		Platform:          req.Platform,
		ControllerSupport: controllerSupport,
		Language:          req.Language,
		PlayerType:        req.PlayerType,
		DeveloperID:       req.DeveloperID,
		Photo:             photo,
		Description:       req.Description,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("game", "create").Inc()
	return c.JSON(http.StatusCreated, game)
}

// Get handles GET /games/:id with optional ?expand=developer.
//
// @Summary      Get a game by id
// @Tags         games
// @Produce      json
// @Param        id      path      string  true   "Game id"
// @Param        expand  query     string  false  "Comma-separated relations to expand (developer)"
// @Success      200     {object}  ports.GameDetail
// @Failure      404     {object}  map[string]string
// @Router       /games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	expand := ports.ParseExpand(c.QueryParam("expand"))
	detail, err := h.games.Get(c.Request().Context(), c.Param("id"), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// List handles GET /games with optional ?expand=developer.
//
// @Summary      List all games
// @Tags         games
// @Produce      json
// @Param        expand  query   string  false  "Comma-separated relations to expand (developer)"
// @Success      200     {array} ports.GameDetail
// @Router       /games [get]
func (h *GameHandler) List(c echo.Context) error {
	expand := ports.ParseExpand(c.QueryParam("expand"))
	details, err := h.games.List(c.Request().Context(), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// ListComments handles GET /games/:id/comments.
//
// @Summary      List a game's comments
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game id"
// @Success      200  {array}   domain.Comment
// @Failure      404  {object}  map[string]string
// @Router       /games/{id}/comments [get]
func (h *GameHandler) ListComments(c echo.Context) error {
	comments, err := h.comments.ListByGame(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Update handles PUT /games/:id — owner of the developer or admin.
//
// @Summary      Update a game
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Game id"
// @Success      200 {object}  domain.Game
// @Failure      400 {object}  map[string]string
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Failure      422 {object}  map[string]string
// @Router       /games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateGameInput{
		Title:       req.Title,
		Genre:       req.Genre,
		Platform:    req.Platform,
		Language:    req.Language,
		PlayerType:  req.PlayerType,
		DeveloperID: req.DeveloperID,
		Description: req.Description,
	}
	if req.ControllerSupport != nil {
		v, err := parseControllerSupport(*req.ControllerSupport)
		if err != nil {
			return err
		}
		input.ControllerSupport = &v
	}

	photo, err := readPhoto(c)
	if err != nil {
		return err
	}
	input.Photo = photo

	game, err := h.games.Update(c.Request().Context(), principal, c.Param("id"), input)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("game", "update").Inc()
	return c.JSON(http.StatusOK, game)
}

// Delete handles DELETE /games/:id — owner of the developer or admin,
// cascading to the game's comments.
//
// @Summary      Delete a game and its comments
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Game id"
// @Success      200  {object}  domain.CascadeResult
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.games.Delete(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		metrics.CascadeFailuresTotal.WithLabelValues("game").Inc()
		return err
	}

	metrics.ObserveCascade(result.Users, result.Developers, result.Games, result.Comments)
	return c.JSON(http.StatusOK, result)
}
