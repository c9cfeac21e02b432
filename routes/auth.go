package routes

import (
	"errors"
	"net/http"

	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/services"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	IntegrationID string `json:"integration_id" binding:"required,uuid"`
	Secret        string `json:"secret" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func RegisterAuthRoutes(group *gin.RouterGroup, db *database.Database, authService services.AuthServiceInterface) {
	auth := group.Group("/auth")
	{
		auth.POST("/token", func(c *gin.Context) { IssueToken(c, db, authService) })
	}
}

func IssueToken(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request tokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := authService.Login(db, request.IntegrationID, request.Secret)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid integration id or secret"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
