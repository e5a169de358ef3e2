package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rerrors "github.com/queryshv/rad-report/internal/errors"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string          `json:"message"`
	Errors  []rerrors.Issue `json:"errors,omitempty"`
}

func (s *Server) ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, messageResponse{Message: message})
}

// fail writes err as {message, errors}. Errors outside the rad-report
// taxonomy are answered with a generic 500.
func (s *Server) fail(c *gin.Context, err error) {
	status := rerrors.HTTPStatus(err)
	e, ok := rerrors.As(err)
	if !ok {
		s.log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, errorResponse{Message: "Internal server error"})
		return
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", string(e.Code)),
			zap.Error(e.Unwrap()))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Message: e.Message, Errors: e.Issues})
}
