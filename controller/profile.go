package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forsakeprojects/partnur-backend/pkg/str"
	"github.com/forsakeprojects/partnur-backend/service/factory"
)

// GetProfile 查询商家画像
// @Summary 查询商家画像
// @Description 按手机号查询画像、完整度分数和缺口字段
// @Tags Profile
// @Produce json
// @Param mobile_number path string true "手机号"
// @Success 200 {object} model.ProfileResponse
// @Router /api/v1/profile/{mobile_number} [get]
func GetProfile(ctx *gin.Context) {
	mobileNumber := str.NormalizeMobile(ctx.Param("mobile_number"))
	if mobileNumber == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "mobile_number is invalid"})
		return
	}

	res, modelErr := factory.GetServiceFactory().NewProfileService().Describe(ctx, mobileNumber)
	if modelErr != nil {
		abortWithServiceError(ctx, "GetProfile", modelErr)
		return
	}

	if res == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	ctx.JSON(http.StatusOK, res)
}
