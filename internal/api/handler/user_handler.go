package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdesk/user-management/internal/api/metrics"
	"github.com/userdesk/user-management/internal/core/domain"
	"github.com/userdesk/user-management/internal/core/ports"
)

// UserHandler handles HTTP requests for the user resource. Success paths
// are shaped here; failures bubble up to the terminal error handler, which
// owns the error envelope.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Param        page       query     int     false  "Page number (1-1000)"
// @Param        limit      query     int     false  "Page size (1-100)"
// @Param        search     query     string  false  "Substring match on Name, Email or Contact"
// @Param        sortBy     query     string  false  "name | email | contact | createdAt | updatedAt"
// @Param        sortOrder  query     string  false  "asc | desc"
// @Success      200        {object}  response
// @Failure      400        {object}  response
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListUsersInput{
		Page:      q.page(),
		Limit:     q.limit(),
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}

	searched := "no"
	if q.Search != "" {
		searched = "yes"
	}
	metrics.ListRequestsTotal.WithLabelValues(searched).Inc()

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    result.Items,
		Pagination: &paginationResponse{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
			Pages: result.TotalPages,
		},
	})
}

// Create handles POST /api/user.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  response
// @Failure      400   {object}  response
// @Failure      409   {object}  response
// @Failure      429   {object}  response
// @Router       /api/user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON format")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Contact: req.Contact,
		Avatar:  req.Avatar,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, response{
		Success: true,
		Data:    user,
		Message: "User created successfully",
	})
}

// Get handles GET /api/user/:id.
//
// @Summary      Fetch a single user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response
// @Failure      400  {object}  response
// @Failure      404  {object}  response
// @Router       /api/user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUserID):
			metrics.UserLookupsTotal.WithLabelValues("invalid_id").Inc()
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.UserLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return err
	}

	metrics.UserLookupsTotal.WithLabelValues("found").Inc()

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    user,
	})
}

// Update handles PUT /api/user/:id.
//
// @Summary      Partially update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  response
// @Failure      400   {object}  response
// @Failure      404   {object}  response
// @Failure      409   {object}  response
// @Router       /api/user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON format")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Contact: req.Contact,
		Avatar:  req.Avatar,
	})
	if err != nil {
		return err
	}

	metrics.UsersUpdatedTotal.Inc()

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    user,
		Message: "User updated successfully",
	})
}

// Delete handles DELETE /api/user/:id — a soft delete; the record survives
// with isActive=false and its email keeps blocking re-registration.
//
// @Summary      Soft-delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response
// @Failure      400  {object}  response
// @Failure      404  {object}  response
// @Router       /api/user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()

	return c.JSON(http.StatusOK, response{
		Success: true,
		Message: "User deleted successfully",
	})
}

// Stats handles GET /api/stats/users.
//
// @Summary      Aggregate user counts
// @Tags         users
// @Produce      json
// @Success      200  {object}  response
// @Router       /api/stats/users [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.service.UserStats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    stats,
	})
}
