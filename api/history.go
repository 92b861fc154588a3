package api

import (
	"fmt"

	"genset/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HistoryHandler 维护记录处理器
type HistoryHandler struct {
	svc *service.HistoryService
}

// NewHistoryHandler 创建维护记录处理器
func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// HistoryRequest 新增/更新维护记录请求
// unitIds 中包含 "all" 或 mode 为 "all" 时表示全部发电机组
type HistoryRequest struct {
	Date        string   `json:"date" example:"2024-01-15"`
	Description string   `json:"description" example:"Perawatan rutin bulanan"`
	Notes       string   `json:"notes" example:"Penggantian oli filter"`
	UnitIDs     []string `json:"unitIds"`
	Mode        string   `json:"mode" example:"all"`
}

// CreateHistoryResult 新增结果
type CreateHistoryResult struct {
	Created interface{} `json:"created"`
	Count   int         `json:"count"`
}

func (h *HistoryHandler) bind(c *gin.Context) (service.HistoryInput, bool) {
	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request body"))
		return service.HistoryInput{}, false
	}

	date, err := parseRequestDate(req.Date)
	if err != nil {
		BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return service.HistoryInput{}, false
	}

	return service.HistoryInput{
		Date:        date,
		Description: req.Description,
		Notes:       req.Notes,
		Units:       service.ParseUnitSelection(req.Mode, req.UnitIDs),
	}, true
}

// List 维护记录列表
// @Summary 维护记录列表
// @Description 按日期升序返回维护记录，search 在描述/备注/机组名称中匹配（区分大小写）
// @Tags 维护记录
// @Produce json
// @Param search query string false "关键字"
// @Param unitId query string false "发电机组ID，all 表示全部"
// @Success 200 {object} Response{data=[]models.History} "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), service.ListFilter{
		Search:   c.Query("search"),
		GensetID: c.Query("unitId"),
	})
	if err != nil {
		respondError(c, err, "history")
		return
	}
	Success(c, list)
}

// Create 新增维护记录
// @Summary 新增维护记录
// @Description 为每个选中的发电机组各新增一条记录
// @Tags 维护记录
// @Accept json
// @Produce json
// @Param request body HistoryRequest true "维护记录"
// @Success 200 {object} Response{data=CreateHistoryResult} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/history [post]
func (h *HistoryHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "history")
		return
	}

	message := fmt.Sprintf("Created %d histories", len(created))
	if in.Units.All {
		message += " for all gensets"
	}
	SuccessWithMessage(c, message, CreateHistoryResult{Created: created, Count: len(created)})
}

// Update 更新维护记录
// @Summary 更新维护记录
// @Description 全量更新，只采用 unitIds 的第一个
// @Tags 维护记录
// @Accept json
// @Produce json
// @Param id path string true "维护记录ID"
// @Param request body HistoryRequest true "维护记录"
// @Success 200 {object} Response{data=models.History} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/history/{id} [put]
func (h *HistoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		NotFound(c, "History not found")
		return
	}

	in, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "history")
		return
	}
	SuccessWithMessage(c, "History updated successfully", updated)
}

// Delete 删除维护记录
// @Summary 删除维护记录
// @Tags 维护记录
// @Produce json
// @Param id path string true "维护记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/history/{id} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		NotFound(c, "History not found")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "history")
		return
	}
	SuccessWithMessage(c, "History deleted successfully", nil)
}
