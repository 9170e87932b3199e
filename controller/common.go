package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/forsakeprojects/partnur-backend/model"
)

// httpStatus 业务错误码映射到 HTTP 状态码
func httpStatus(modelErr *model.Error) int {
	switch modelErr.Code {
	case model.ErrorParams, model.ErrorMobileNumberEmpty, model.ErrorMobileNumberInvalid, model.ErrorMessageEmpty:
		return http.StatusBadRequest
	case model.ErrorProfileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError 统一的业务错误出口，5xx 记 Error，4xx 记 Warn
func abortWithServiceError(ctx *gin.Context, where string, modelErr *model.Error) {
	status := httpStatus(modelErr)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s error: code=%d, message=%s", where, modelErr.Code, modelErr.Message)
	} else {
		log.Warnf("%s rejected: code=%d, message=%s", where, modelErr.Code, modelErr.Message)
	}
	ctx.JSON(status, gin.H{"error": modelErr.Message, "code": modelErr.Code})
}
