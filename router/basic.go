package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forsakeprojects/partnur-backend/middleware"
	"github.com/forsakeprojects/partnur-backend/pkg/timeutil"
)

func addBasicRouter(engine *gin.Engine) {
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID)
	engine.Use(middleware.Logger)

	// 存活探针
	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   timeutil.GetNowTimeStr(),
		})
	})
}
