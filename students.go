package main

import (
	"net/http"

	"bitbucket.org/restgest/restgest_backend/models"
	"github.com/gin-gonic/gin"
)

func listStudentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllStudents(c.Request.Context())
		if err != nil {
			respondError(c, "students", "listStudentsHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func listStudentsByTurmaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		turma := models.Turma(c.Param("turma"))
		results, err := models.GetStudentsByTurma(c.Request.Context(), turma)
		if err != nil {
			respondError(c, "students", "listStudentsByTurmaHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getStudentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		student, err := models.GetStudent(c.Request.Context(), id)
		if err != nil {
			respondError(c, "students", "getStudentHandler", err)
			return
		}
		c.JSON(http.StatusOK, student)
	}
}

func createStudentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewStudent
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		student, err := models.CreateStudent(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "students", "createStudentHandler", err)
			return
		}
		c.JSON(http.StatusCreated, student)
	}
}

func updateStudentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}

		var input models.UpdateStudent
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		student, err := models.UpdateStudentById(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "students", "updateStudentHandler", err)
			return
		}
		c.JSON(http.StatusOK, student)
	}
}

func deleteStudentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		if _, err := models.DeleteStudent(c.Request.Context(), id); err != nil {
			respondError(c, "students", "deleteStudentHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
	}
}
