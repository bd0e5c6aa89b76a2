package controllers

import (
	"errors"
	"log"
	"net/http"

	"devconnector-be/internal/middleware"
	"devconnector-be/internal/models"
	"devconnector-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/users
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	token, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, errorList("User already exists"))
			return
		}
		log.Printf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"msg": "Unable to register user. Server error.",
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}

// Login handles POST /api/auth
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, errorList("User does not exist"))
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, errorList("Password is incorrect"))
		default:
			log.Printf("login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"msg": "Unable to log in. Server error.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}

// GetCurrentUser handles GET /api/auth - returns the authenticated user
// without the password field
func (ac *AuthController) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"msg": "No token, authorization denied",
		})
		return
	}

	user, err := ac.authService.CurrentUser(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "User not found"})
			return
		}
		log.Printf("current user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
