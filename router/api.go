package router

import (
	"github.com/forsakeprojects/partnur-backend/controller"

	"github.com/gin-gonic/gin"
)

func addApiRouter(engine *gin.Engine) {

	// 对话与画像 API
	api := engine.Group("/api/v1")
	{
		api.POST("/chat", controller.Chat)
		api.POST("/chat/enhanced", controller.ChatEnhanced)

		// 画像查询
		api.GET("/profile/:mobile_number", controller.GetProfile)

		// 互动统计与趋势
		api.GET("/analytics/:mobile_number", controller.GetAnalytics)
		api.GET("/trends", controller.GetTrends)
	}
}
