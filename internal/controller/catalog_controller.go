package controller

import (
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CatalogController 目录层级的只读浏览接口
type CatalogController struct {
	CatalogRepo *repository.CatalogRepository
}

func NewCatalogController(catalogRepo *repository.CatalogRepository) *CatalogController {
	return &CatalogController{CatalogRepo: catalogRepo}
}

// ListUniversities godoc
// @Summary 大学列表
// @Tags 目录
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.University} "成功"
// @Router /api/catalog/universities [get]
func (c *CatalogController) ListUniversities(ctx *gin.Context) {
	universities, err := c.CatalogRepo.ListUniversities()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, universities)
}

// ListCourses godoc
// @Summary 某大学的课程列表
// @Tags 目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "大学ID"
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/catalog/universities/{id}/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的大学ID")
		return
	}

	courses, err := c.CatalogRepo.ListCourses(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListSubjects godoc
// @Summary 某课程的科目列表
// @Tags 目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Subject} "成功"
// @Router /api/catalog/courses/{id}/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	subjects, err := c.CatalogRepo.ListSubjects(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}
