package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// SelectRequest 作答请求
// swagger:model SelectRequest
type SelectRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// RevealRequest 揭示答案请求
// swagger:model RevealRequest
type RevealRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
}

// Get godoc
// @Summary 当前练习会话
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Session} "成功"
// @Failure 404 {object} util.Response "无进行中的会话"
// @Router /api/session [get]
func (c *SessionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.Get(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Select godoc
// @Summary 提交某题的作答
// @Description 揭示前可反复修改；揭示后答案锁定，返回 409
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SelectRequest true "作答"
// @Success 200 {object} util.Response{data=service.ProgressMetrics} "成功"
// @Failure 404 {object} util.Response "无进行中的会话或题目不在本批次"
// @Failure 409 {object} util.Response "答案已锁定"
// @Router /api/session/select [post]
func (c *SessionController) Select(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SessionService.Select(claims.UserID, req.QuestionID, req.Answer); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	c.respondProgress(ctx, claims.UserID)
}

// Reveal godoc
// @Summary 揭示某题答案
// @Description 幂等操作，重复揭示不报错
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RevealRequest true "题目"
// @Success 200 {object} util.Response{data=service.ProgressMetrics} "成功"
// @Failure 404 {object} util.Response "无进行中的会话或题目不在本批次"
// @Router /api/session/reveal [post]
func (c *SessionController) Reveal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RevealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SessionService.Reveal(claims.UserID, req.QuestionID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	c.respondProgress(ctx, claims.UserID)
}

// Next godoc
// @Summary 下一题
// @Description 已在末题时保持不变（no-op）
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressMetrics} "成功"
// @Failure 404 {object} util.Response "无进行中的会话"
// @Router /api/session/next [post]
func (c *SessionController) Next(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.SessionService.Next(claims.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	c.respondProgress(ctx, claims.UserID)
}

// Previous godoc
// @Summary 上一题
// @Description 已在首题时保持不变（no-op）
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressMetrics} "成功"
// @Failure 404 {object} util.Response "无进行中的会话"
// @Router /api/session/previous [post]
func (c *SessionController) Previous(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.SessionService.Previous(claims.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	c.respondProgress(ctx, claims.UserID)
}

// Progress godoc
// @Summary 当前进度指标
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressMetrics} "成功"
// @Failure 404 {object} util.Response "无进行中的会话"
// @Router /api/session/progress [get]
func (c *SessionController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.respondProgress(ctx, claims.UserID)
}

// Finish godoc
// @Summary 结束会话并保存成绩
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Assessment} "成功"
// @Failure 404 {object} util.Response "无进行中的会话"
// @Router /api/session/finish [post]
func (c *SessionController) Finish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assessment, err := c.SessionService.Finish(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// Abandon godoc
// @Summary 放弃当前会话
// @Description 丢弃会话且不保存成绩
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /api/session [delete]
func (c *SessionController) Abandon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.SessionService.Clear(claims.UserID)
	util.Success(ctx, nil)
}

func (c *SessionController) respondProgress(ctx *gin.Context, userID uint) {
	metrics, err := c.SessionService.Progress(userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, metrics)
}
