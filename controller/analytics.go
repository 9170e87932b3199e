package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forsakeprojects/partnur-backend/pkg/str"
	"github.com/forsakeprojects/partnur-backend/service/factory"
)

// GetAnalytics 查询商家互动统计
// @Summary 查询商家互动统计
// @Description 按手机号查询窗口内的互动统计和画像快照
// @Tags Analytics
// @Produce json
// @Param mobile_number path string true "手机号"
// @Param days query int false "窗口天数，默认 30"
// @Success 200 {object} model.ActivitySummary
// @Router /api/v1/analytics/{mobile_number} [get]
func GetAnalytics(ctx *gin.Context) {
	mobileNumber := str.NormalizeMobile(ctx.Param("mobile_number"))
	if mobileNumber == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "mobile_number is invalid"})
		return
	}

	days, err := str.StringToInt(ctx.Query("days"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
		return
	}

	res, modelErr := factory.GetServiceFactory().NewAnalyticsService().ActivitySummary(ctx, mobileNumber, days)
	if modelErr != nil {
		abortWithServiceError(ctx, "GetAnalytics", modelErr)
		return
	}

	if res == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// GetTrends 查询画像完整度趋势
// @Summary 查询画像完整度趋势
// @Description 按创建时间倒序返回最近画像的完整度和汇总
// @Tags Analytics
// @Produce json
// @Param limit query int false "返回条数，默认 100"
// @Success 200 {object} model.CompletionTrends
// @Router /api/v1/trends [get]
func GetTrends(ctx *gin.Context) {
	limit, err := str.StringToInt(ctx.Query("limit"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	res, modelErr := factory.GetServiceFactory().NewAnalyticsService().CompletionTrend(ctx, limit)
	if modelErr != nil {
		abortWithServiceError(ctx, "GetTrends", modelErr)
		return
	}

	ctx.JSON(http.StatusOK, res)
}
