package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/internhub/api/http/presenter"
	"github.com/artem13815/internhub/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Login выдаёт JWT администратору (рекрутеру).
// @Summary Вход администратора
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "username and password are required")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, auth.ErrNotConfigured):
			return presenter.Error(c, http.StatusServiceUnavailable, "admin access is not configured")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to login")
		}
	}

	return presenter.JSON(c, http.StatusOK, loginResponse{
		Username: result.Admin.Username,
		Token:    result.Token,
	})
}
