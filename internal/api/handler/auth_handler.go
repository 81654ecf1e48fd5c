package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/metrics"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and signs the caller in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     domain.Role(req.Role),
	}
	if req.Location != nil {
		in.Location = &domain.Location{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}

	token, user, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}
