package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/middleware"
)

// CredentialsRequest represents the request body for register and login
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register - creates an account and
// returns a session token
func Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := authService().Register(req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := middleware.IssueToken(config.GetConfig(), user.ID, user.IsAdmin)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// Logout handles POST /api/v1/auth/logout - sessions are stateless tokens,
// so logout just acknowledges; the client discards its token
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Logged out"},
	})
}

// Login handles POST /api/v1/auth/login - validates credentials and returns
// a session token
func Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := authService().Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := middleware.IssueToken(config.GetConfig(), user.ID, user.IsAdmin)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}
