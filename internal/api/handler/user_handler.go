package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/api/metrics"
	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/ports"
)

// UserHandler handles admin-side account management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Create provisions an account with an admin-issued default password; the
// user is forced through the change-password flow on first login.
//
// @Summary      Create a user account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req.Username, req.Password, req.Role, false)
	if err != nil {
		return err
	}
	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusCreated, userResponse{User: user})
}
