package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID 透传调用方带来的请求 ID，没有就生成一个
// 写回响应头，并放进 gin 上下文供访问日志关联
func RequestID(ctx *gin.Context) {
	requestID := ctx.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx.Set(RequestIDHeader, requestID)
	ctx.Writer.Header().Set(RequestIDHeader, requestID)

	ctx.Next()
}
