package main

import (
	"net/http"

	"bitbucket.org/restgest/restgest_backend/models"
	"github.com/gin-gonic/gin"
)

func listServicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllServices(c.Request.Context())
		if err != nil {
			respondError(c, "services", "listServicesHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getServiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		service, err := models.GetService(c.Request.Context(), id)
		if err != nil {
			respondError(c, "services", "getServiceHandler", err)
			return
		}
		c.JSON(http.StatusOK, service)
	}
}

func createServiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewService
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		service, err := models.CreateService(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "services", "createServiceHandler", err)
			return
		}
		c.JSON(http.StatusCreated, service)
	}
}

func updateServiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}

		var input models.UpdateService
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		service, err := models.UpdateServiceById(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "services", "updateServiceHandler", err)
			return
		}
		c.JSON(http.StatusOK, service)
	}
}

func deleteServiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		if _, err := models.DeleteService(c.Request.Context(), id); err != nil {
			respondError(c, "services", "deleteServiceHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
	}
}
