package main

import (
	"net/http"
	"os"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/gin-gonic/gin"
)

type SigninInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// signinHandler checks the gateway credentials, issues a JWT and
// registers it as a redis session. The credential pair comes from env:
// GATEWAY_USER plus a bcrypt hash in GATEWAY_PASSWORD_HASH.
func signinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SigninInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		username := os.Getenv("GATEWAY_USER")
		passwordHash := os.Getenv("GATEWAY_PASSWORD_HASH")
		if username == "" || passwordHash == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "signin is not configured"})
			return
		}
		if input.Username != username || utils.ComparePassword(passwordHash, input.Password) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := utils.JwtGenerate(1, input.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := config.SetRedisValue("Token:"+token, input.Username, utils.TokenLifespan()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "username": input.Username})
	}
}

func signoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token != "" {
			_ = config.RemoveRedisKey("Token:" + token)
		}
		c.Status(http.StatusNoContent)
	}
}
