package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/promptkit/errors"
)

// DataResponse is the success envelope. Error is set when a node ran but
// reported a failure in band; the node's outputs then carry "Error: ..."
// text and the status is still 200.
type DataResponse struct {
	Data  any                  `json:"data"`
	Error *apperrors.ErrorBody `json:"error,omitempty"`
}

// RespondWithError sends the AppError's status and body, or a generic 500.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondNode sends a node result with its in-band error, if any.
func RespondNode(c *gin.Context, data any, err error) {
	resp := DataResponse{Data: data}
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.Internal(err)
		}
		body := appErr.ToResponse().Error
		resp.Error = &body
	}
	c.JSON(http.StatusOK, resp)
}

// bindJSON decodes the body over dst, which holds the defaults.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return false
	}
	return true
}
