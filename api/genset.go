package api

import (
	"genset/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GensetHandler 发电机组处理器
type GensetHandler struct {
	svc *service.GensetService
}

// NewGensetHandler 创建发电机组处理器
func NewGensetHandler(svc *service.GensetService) *GensetHandler {
	return &GensetHandler{svc: svc}
}

// CreateGensetRequest 创建发电机组请求
type CreateGensetRequest struct {
	Name string `json:"name" example:"Genset A - 100 KVA"`
}

// List 发电机组列表
// @Summary 发电机组列表
// @Description 按名称升序返回全部发电机组
// @Tags 发电机组
// @Produce json
// @Success 200 {object} Response{data=[]models.Genset} "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/units [get]
func (h *GensetHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "units")
		return
	}
	Success(c, list)
}

// Create 创建发电机组
// @Summary 创建发电机组
// @Tags 发电机组
// @Accept json
// @Produce json
// @Param request body CreateGensetRequest true "发电机组名称"
// @Success 200 {object} Response{data=models.Genset} "创建成功"
// @Failure 400 {object} Response "缺少名称"
// @Failure 409 {object} Response "名称重复"
// @Router /api/units [post]
func (h *GensetHandler) Create(c *gin.Context) {
	var req CreateGensetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request body"))
		return
	}

	g, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "unit")
		return
	}
	SuccessWithMessage(c, "Unit created successfully", g)
}

// Delete 删除发电机组
// @Summary 删除发电机组
// @Description 仍有维护记录的发电机组不能删除
// @Tags 发电机组
// @Produce json
// @Param id path string true "发电机组ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "不存在"
// @Failure 409 {object} Response "仍有维护记录"
// @Router /api/units/{id} [delete]
func (h *GensetHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		NotFound(c, "Unit not found")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "unit")
		return
	}
	SuccessWithMessage(c, "Unit deleted successfully", nil)
}
