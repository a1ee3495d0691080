package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// parseDate accepts both RFC 3339 timestamps and plain dates, which is
// what the frontend sends depending on the widget.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func parseIdParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

// respondBindError maps gin binding failures to the per-field error body.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  utils.ProcessValidationErrors(err),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

// respondError maps the model error taxonomy onto HTTP. Anything outside
// the taxonomy is an internal error: logged with full detail, collapsed to
// a generic message on the wire.
func respondError(c *gin.Context, moduleName string, funcName string, err error) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		body := gin.H{"message": validationErr.Error()}
		if len(validationErr.Fields) > 0 {
			body["message"] = "Validation failed"
			body["errors"] = validationErr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	var conflictErr *utils.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": conflictErr.Message})
		return
	}

	var notFoundErr *utils.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundErr.Error()})
		return
	}

	logger := config.GetLogger()
	cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	config.LogError(logger, moduleName, funcName, "unhandled error", cid, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
