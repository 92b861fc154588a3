package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"genset/service"

	"github.com/gin-gonic/gin"
)

// xlsxContentType xlsx 下载的 MIME 类型
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferHandler 导入导出处理器
type TransferHandler struct {
	svc            *service.TransferService
	maxUploadBytes int64
}

// NewTransferHandler 创建导入导出处理器，maxUploadMB 为上传文件大小上限
func NewTransferHandler(svc *service.TransferService, maxUploadMB int) *TransferHandler {
	return &TransferHandler{svc: svc, maxUploadBytes: int64(maxUploadMB) << 20}
}

// ExportFilteredRequest 按条件导出请求
type ExportFilteredRequest struct {
	SearchTerm string `json:"searchTerm" example:"oli"`
	UnitID     string `json:"unitId" example:"all"`
}

// Export 导出全部维护记录
// @Summary 导出全部维护记录
// @Tags 导入导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx 文件"
// @Failure 500 {object} Response "导出失败"
// @Router /api/export [get]
func (h *TransferHandler) Export(c *gin.Context) {
	h.export(c, service.ListFilter{}, false)
}

// ExportFiltered 按条件导出
// @Summary 按条件导出维护记录
// @Description 文件名包含发电机组名称与关键字
// @Tags 导入导出
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body ExportFilteredRequest false "筛选条件"
// @Success 200 {file} file "xlsx 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/export/filtered [post]
func (h *TransferHandler) ExportFiltered(c *gin.Context) {
	var req ExportFilteredRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, SafeErrorMessage(err, "Invalid request body"))
			return
		}
	}
	h.export(c, service.ListFilter{Search: req.SearchTerm, GensetID: req.UnitID}, true)
}

func (h *TransferHandler) export(c *gin.Context, f service.ListFilter, filtered bool) {
	buf := new(bytes.Buffer)
	filename, err := h.svc.Export(c.Request.Context(), buf, f, filtered)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to export data"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Import 导入 xlsx
// @Summary 导入维护记录
// @Description 读取第一个工作表，列名 tanggal/uraian/keterangan/nama_genset，不存在的发电机组自动创建
// @Tags 导入导出
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx 文件"
// @Success 200 {object} Response{data=service.ImportSummary} "导入完成"
// @Failure 400 {object} Response "文件缺失或格式错误"
// @Failure 500 {object} Response{data=service.ImportSummary} "导入中止"
// @Router /api/import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		BadRequest(c, "No file uploaded")
		return
	}

	file, err := header.Open()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			BadRequest(c, verr.Message)
			return
		}
		// 已写入的行不回滚，连同统计一起返回
		c.JSON(http.StatusInternalServerError, Response{
			Code:    http.StatusInternalServerError,
			Message: SafeErrorMessage(err, "Import aborted"),
			Data:    summary,
		})
		return
	}

	SuccessWithMessage(c, fmt.Sprintf("Imported %d histories", summary.Imported), summary)
}
