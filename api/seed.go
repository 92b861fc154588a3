package api

import (
	"genset/service"

	"github.com/gin-gonic/gin"
)

// SeedHandler 示例数据（仅 debug 模式注册）
type SeedHandler struct {
	store service.Store
}

// NewSeedHandler 创建示例数据处理器
func NewSeedHandler(s service.Store) *SeedHandler {
	return &SeedHandler{store: s}
}

// Seed 写入示例数据
// @Summary 写入示例数据
// @Tags 示例数据
// @Produce json
// @Success 200 {object} Response{data=service.SeedResult} "写入成功"
// @Router /api/seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := service.Seed(c.Request.Context(), h.store)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to seed data"))
		return
	}
	SuccessWithMessage(c, "Seed data created successfully", result)
}
