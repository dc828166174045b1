package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/pkg/response"
)

// internalError logs the real cause server-side and degrades the client
// response to a generic 500. Details never leak to the client.
func internalError(c *gin.Context, logger *logrus.Logger, err error, msg string) {
	if logger != nil {
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.Message(c, http.StatusInternalServerError, "internal server error")
}
