package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/internal/application"
	"github.com/homechores/chorelog/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Field constraints are checked in the service so every violation is reported
// together; the request structs stay tag-free on purpose.
type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid payload")
		return
	}

	userID, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *application.ValidationError
		var derr *application.DuplicateError
		switch {
		case errors.As(err, &verr):
			response.Message(c, http.StatusBadRequest, verr.Error())
		case errors.As(err, &derr):
			response.Message(c, http.StatusBadRequest, derr.Error())
		default:
			internalError(c, h.Logger, err, "register user failed")
		}
		return
	}

	response.MessageWith(c, http.StatusCreated, "user registered successfully", "userId", userID)
}

// Login POST /api/auth/login
// The identifier may come in either the username or the email field.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid payload")
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		response.Message(c, http.StatusBadRequest, "please provide identifier (email/username) and password")
		return
	}

	token, _, err := h.Svc.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			// Never reveal whether the identifier or the password was wrong.
			response.Message(c, http.StatusBadRequest, "invalid credentials")
			return
		}
		internalError(c, h.Logger, err, "login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
