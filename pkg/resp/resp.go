package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Envelope is the shape of every JSON answer.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg, Data: data})
}
func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: msg, Data: data})
}
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: false, Message: msg})
}
func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, msg)
}
func Unauthorized(c *gin.Context, msg string) {
	Fail(c, http.StatusUnauthorized, msg)
}
func Forbidden(c *gin.Context, msg string) {
	Fail(c, http.StatusForbidden, msg)
}
func NotFound(c *gin.Context, msg string) {
	Fail(c, http.StatusNotFound, msg)
}
func Conflict(c *gin.Context, msg string) {
	Fail(c, http.StatusConflict, msg)
}

// ServerError logs err and answers with a generic message.
func ServerError(c *gin.Context, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error("request failed")
	Fail(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
}
