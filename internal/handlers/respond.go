package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schoolhub/api/internal/middleware"
	"schoolhub/api/internal/validation"
)

const msgUnexpected = "An unexpected error has occurred"

// request is a JSON body that is normalized before validation and escaped after.
type request interface {
	normalize()
	escape()
}

// bind decodes the JSON body into req, trims it, runs the field validators and
// then escapes the text fields. It writes the 400 response itself and reports
// whether to go on.
func (h HandlerSet) bind(c *gin.Context, req request) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.Errors{
			{Field: "body", Message: "Request body must be a valid JSON object"},
		}})
		return false
	}

	req.normalize()

	if err := h.validator.Struct(req); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return false
		}
		h.fail(c, err, msgUnexpected)
		return false
	}

	req.escape()
	return true
}

// fail logs err with the request id and answers 500 with a client-safe message.
func (h HandlerSet) fail(c *gin.Context, err error, message string) {
	h.log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("route", c.FullPath()).
		Str("request_id", middleware.RequestIDFrom(c)).
		Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func messageJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
