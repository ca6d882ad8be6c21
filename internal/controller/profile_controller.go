package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// Complete godoc
// @Summary 完成入职引导
// @Description 事务化更新用户资料并按需创建行业洞察记录
// @Tags 资料
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CompleteProfileRequest true "资料表单"
// @Success 200 {object} util.Response{data=service.ProfileResult} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 504 {object} util.Response "事务超时，可重试"
// @Router /api/profile/complete [post]
func (c *ProfileController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CompleteProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProfileService.CompleteProfile(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Get godoc
// @Summary 当前用户资料
// @Tags 资料
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.ProfileService.GetProfile(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetInsight godoc
// @Summary 行业洞察
// @Description 读取指定行业的洞察，不存在时以默认值惰性创建
// @Tags 资料
// @Produce  json
// @Security ApiKeyAuth
// @Param   industry path string true "行业键"
// @Success 200 {object} util.Response{data=model.IndustryInsight} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/insights/{industry} [get]
func (c *ProfileController) GetInsight(ctx *gin.Context) {
	industry := ctx.Param("industry")

	insight, err := c.ProfileService.GetInsight(ctx.Request.Context(), industry)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, insight)
}
