package api

import (
	"errors"
	"strings"
	"time"

	"genset/config"
	"genset/models"
	"genset/service"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// respondError 服务层错误统一映射为 HTTP 状态码；resource 用于拼接提示信息
func respondError(c *gin.Context, err error, resource string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, capitalize(resource)+" not found")
	case errors.Is(err, service.ErrDuplicate):
		Conflict(c, capitalize(resource)+" already exists")
	case errors.Is(err, service.ErrInUse):
		Conflict(c, capitalize(resource)+" still has maintenance history")
	default:
		InternalError(c, SafeErrorMessage(err, "Failed to process "+resource))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseRequestDate 接受 2006-01-02 或 RFC3339，空串返回零值交给服务层校验
func parseRequestDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, nil
	}
	// RFC3339 取其自身时区下的日历日期
	return time.Parse(time.RFC3339, s)
}
