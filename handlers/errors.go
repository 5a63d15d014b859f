package handlers

import (
	"net/http"

	"servicefinder/services/apperror"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err using its taxonomy code. Unclassified errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
		utils.JSONError(c, status, "Internal Server Error", "")
		return
	}
	utils.JSONError(c, status, apperror.CodeOf(err), err.Error())
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, apperror.ErrValidation.Code, err.Error())
}
