package main

import (
	"errors"
	"net/http"

	"bitbucket.org/restgest/restgest_backend/models"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/gin-gonic/gin"
)

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		info, err := models.Login(c.Request.Context(), &input)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username or password"})
				return
			}
			respondError(c, "auth", "loginHandler", err)
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.Logout(c.Request.Context()); err != nil {
			respondError(c, "auth", "logoutHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := utils.GetUserIdFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		user, err := models.GetUser(c.Request.Context(), userId)
		if err != nil {
			respondError(c, "auth", "meHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"nome":     user.Nome,
		})
	}
}
