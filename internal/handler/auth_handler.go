// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"user-gate/internal/services"
	"user-gate/internal/transport/httpdto"
	gate_errors "user-gate/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	RegisteredMessage = "Thank you for registering"
	LoggedInMessage   = "Logged in"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register validates a registration request.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	// Unparseable bodies are validated as empty fields.
	_ = c.ShouldBind(&req)

	err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.String(http.StatusOK, RegisteredMessage)
}

// Login checks that the submitted email is known.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	_ = c.ShouldBind(&req)

	if err := h.service.Login(c.Request.Context(), services.LoginInput{Email: req.Email}); err != nil {
		writeAuthError(c, err)
		return
	}

	c.String(http.StatusOK, LoggedInMessage)
}

// writeAuthError answers validation failures directly and hands every other
// error to the error pipeline.
func writeAuthError(c *gin.Context, err error) {
	if verrs, ok := services.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, verrs)
		return
	}
	_ = c.Error(gate_errors.From(err))
	c.Abort()
}
