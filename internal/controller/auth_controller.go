package controller

import (
	"errors"
	"net/http"

	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Register godoc
// @Summary Register a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Username and password required")
		return
	}

	user, err := c.AuthService.Register(req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, util.ErrUsernameTaken) {
			util.Conflict(ctx, "Username already exists")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, RegisterResponse{
		Message: "Registration successful",
		UserID:  user.ID,
	})
}

// Login godoc
// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Username and password required")
		return
	}

	user, token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{
		Message:  "Login successful",
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	})
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless; the client simply discards its copy.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
