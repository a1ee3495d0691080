package main

import (
	"net/http"
	"time"

	"bitbucket.org/restgest/restgest_backend/models"
	"github.com/gin-gonic/gin"
)

func listQuebrasHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllQuebras(c.Request.Context())
		if err != nil {
			respondError(c, "quebras", "listQuebrasHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getQuebraHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		quebra, err := models.GetQuebra(c.Request.Context(), id)
		if err != nil {
			respondError(c, "quebras", "getQuebraHandler", err)
			return
		}
		c.JSON(http.StatusOK, quebra)
	}
}

func createQuebraHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewQuebra
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		quebra, err := models.CreateQuebra(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "quebras", "createQuebraHandler", err)
			return
		}
		c.JSON(http.StatusCreated, quebra)
	}
}

func deleteQuebraHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		if _, err := models.DeleteQuebra(c.Request.Context(), id); err != nil {
			respondError(c, "quebras", "deleteQuebraHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quebra deleted and inventory restored successfully"})
	}
}

func exportQuebrasHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := models.ExportQuebrasExcel(c.Request.Context())
		if err != nil {
			respondError(c, "quebras", "exportQuebrasHandler", err)
			return
		}

		filename := "quebras-" + time.Now().Format("2006-01-02") + ".xlsx"
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := f.Write(c.Writer); err != nil {
			respondError(c, "quebras", "exportQuebrasHandler", err)
		}
	}
}
