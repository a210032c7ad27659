package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/pkg/helpers"
	"github.com/oksasatya/go-link-saver/pkg/response"
)

// internalError logs err with the request id and answers with a generic 500.
func internalError(c *gin.Context, logger *logrus.Logger, msg string, err error) {
	if logger != nil {
		helpers.LogError(logger, msg, err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
	}
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}
