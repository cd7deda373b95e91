package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urlmin/minify-system/internal/core/ports"
)

// UserHandler handles HTTP requests of the user-identity service.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /users.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      registerUserRequest  true  "User details"
// @Success      201   {object}  registeredUserResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registeredUserResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Role:  string(created.Role),
		Token: created.Token,
		Ref:   created.Ref,
	})
}

// Login handles POST /users/login — exchanges the per-user login secret for
// a signed bearer credential.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	credential, principal, err := h.service.Login(c.Request().Context(), req.Email, req.SecretToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: credential,
		ID:    principal.ID,
		Email: principal.Email,
		Role:  string(principal.Role),
	})
}

// Search handles POST /users/search.
//
// @Summary      Search users by name
// @Tags         users
// @Security     BasicAuth
// @Success      200  {array}  userResponse
// @Router       /users/search [post]
func (h *UserHandler) Search(c echo.Context) error {
	var req searchUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	views, err := h.service.Search(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toUserResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /users/:id.
//
// @Summary      View a user
// @Tags         users
// @Security     BasicAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*view))
}

// Update handles PATCH /users/:id.
//
// @Summary      Update a user's profile
// @Tags         users
// @Security     BasicAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*view))
}

// UpdateRole handles PATCH /users/:id/role — the only path that mutates a
// stored role.
//
// @Summary      Change a user's role
// @Tags         users
// @Security     BasicAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*view))
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BasicAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deletedUserResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedUserResponse{ID: id, Message: "user has been deleted"})
}

func toUserResponse(v ports.UserView) userResponse {
	return userResponse{
		ID:    v.ID,
		Name:  v.Name,
		Email: v.Email,
		Role:  string(v.Role),
		Ref:   v.Ref,
	}
}
