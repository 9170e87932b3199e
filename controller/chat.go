package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forsakeprojects/partnur-backend/model"
	"github.com/forsakeprojects/partnur-backend/service/factory"
)

// bindChatRequest 优先按 JSON body 解析，失败再尝试 query 参数
func bindChatRequest(ctx *gin.Context) (*model.ChatRequest, error) {
	var req model.ChatRequest

	jsonErr := ctx.ShouldBindJSON(&req)
	if jsonErr == nil {
		return &req, nil
	}
	if queryErr := ctx.ShouldBindQuery(&req); queryErr == nil {
		return &req, nil
	}
	return nil, jsonErr
}

// Chat 对话接口
func Chat(ctx *gin.Context) {
	req, err := bindChatRequest(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, modelErr := factory.GetServiceFactory().NewChatService().Chat(ctx, req)
	if modelErr != nil {
		abortWithServiceError(ctx, "Chat", modelErr)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// ChatEnhanced 对话接口增强版，附带经营洞察和近一周互动统计
func ChatEnhanced(ctx *gin.Context) {
	req, err := bindChatRequest(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, modelErr := factory.GetServiceFactory().NewChatService().ChatEnhanced(ctx, req)
	if modelErr != nil {
		abortWithServiceError(ctx, "ChatEnhanced", modelErr)
		return
	}

	ctx.JSON(http.StatusOK, res)
}
