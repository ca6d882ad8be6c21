package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuestionController 出题入口：生成题目批次并开启练习会话
type QuestionController struct {
	GenerationService *service.GenerationService
	SessionService    *service.SessionService
}

func NewQuestionController(generationService *service.GenerationService, sessionService *service.SessionService) *QuestionController {
	return &QuestionController{
		GenerationService: generationService,
		SessionService:    sessionService,
	}
}

// Generate godoc
// @Summary 生成练习题
// @Description 按科目/难度/题型生成一批题目，并用它整体替换当前练习会话
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.GenerationRequest true "出题参数"
// @Success 200 {object} util.Response{data=service.Session} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Failure 502 {object} util.Response "题目生成失败"
// @Router /api/questions/generate [post]
func (c *QuestionController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GenerationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, subject, err := c.GenerationService.Generate(ctx.Request.Context(), req)
	if err != nil {
		// 批次失败时不应用任何部分结果到会话
		util.HandleServiceError(ctx, err)
		return
	}

	session := c.SessionService.Start(claims.UserID, subject.ID, string(req.Type), questions)

	util.Success(ctx, session)
}
