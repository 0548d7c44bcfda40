package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/api/metrics"
	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// UserHandler handles HTTP requests for user resources.
type UserHandler struct {
	users      ports.UserService
	developers ports.DeveloperService
}

func NewUserHandler(users ports.UserService, developers ports.DeveloperService) *UserHandler {
	return &UserHandler{users: users, developers: developers}
}

// createUserRequest binds the multipart form fields of a signup. The photo
// arrives as a file part and is read separately.
type createUserRequest struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"type"     validate:"required"`
}

type userResponse struct {
	User      *domain.User `json:"user"`
	PhotoMime string       `json:"photoMime,omitempty"`
}

func newUserResponse(u *domain.User) userResponse {
	resp := userResponse{User: u}
	if len(u.Photo) > 0 {
		resp.PhotoMime = u.Photo.MimeType()
	}
	return resp
}

// Create handles POST /users — public signup.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email (unique)"
// @Param        password  formData  string  true  "Password"
// @Param        type      formData  string  true  "Role: admin, dev or guest"
// @Param        photo     formData  file    true  "Profile photo"
// @Success      201       {object}  userResponse
// @Failure      400       {object}  map[string]string
// @Failure      422       {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	photo, err := readPhoto(c)
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Photo:    photo,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("user", "create").Inc()
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// Get handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}  userResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListDevelopers handles GET /users/:id/developers — the studios owned by
// the user.
//
// @Summary      List a user's developers
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   domain.Developer
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/developers [get]
func (h *UserHandler) ListDevelopers(c echo.Context) error {
	devs, err := h.developers.ListByOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, devs)
}

// Update handles PUT /users/:id — full-field update, self or admin.
//
// @Summary      Update a user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "User id"
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Param        type      formData  string  true  "Role (changing it requires admin)"
// @Param        photo     formData  file    true  "Profile photo"
// @Success      200       {object}  userResponse
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	photo, err := readPhoto(c)
	if err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Photo:    photo,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Delete handles DELETE /users/:id — self or admin, cascading to owned
// developers and authored comments.
//
// @Summary      Delete a user and its dependents
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.CascadeResult
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.users.Delete(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		metrics.CascadeFailuresTotal.WithLabelValues("user").Inc()
		return err
	}

	metrics.ObserveCascade(result.Users, result.Developers, result.Games, result.Comments)
	return c.JSON(http.StatusOK, result)
}

// readPhoto reads the optional "photo" file part. Absence is reported as
// nil bytes; services decide whether the photo is required.
func readPhoto(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable photo upload")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable photo upload")
	}
	return raw, nil
}
