package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"genset/models"
	"genset/spreadsheet"
	"genset/store"
)

// ImportNotifier 导入完成后的通知（邮件等）
type ImportNotifier interface {
	NotifyImport(filename string, summary ImportSummary) error
}

// RowError 导入失败的行
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportSummary 导入结果
// 逐行写入、不回滚：出错时已写入的行保留
type ImportSummary struct {
	TotalRows      int        `json:"totalRows"`
	Imported       int        `json:"imported"`
	Skipped        int        `json:"skipped"`
	Failed         int        `json:"failed"`
	GensetsCreated int        `json:"gensetsCreated"`
	SkippedLines   []int      `json:"skippedLines"`
	Errors         []RowError `json:"errors"`
}

// TransferService xlsx 导入导出
type TransferService struct {
	store     Store
	histories *HistoryService
	notifier  ImportNotifier
}

// NewTransferService 创建导入导出服务；notifier 可为 nil
func NewTransferService(s Store, histories *HistoryService, notifier ImportNotifier) *TransferService {
	return &TransferService{store: s, histories: histories, notifier: notifier}
}

// Export 按筛选条件导出，返回下载文件名
// filtered=false 时忽略筛选条件并使用固定文件名
func (s *TransferService) Export(ctx context.Context, w io.Writer, f ListFilter, filtered bool) (string, error) {
	if !filtered {
		f = ListFilter{}
	}

	list, err := s.histories.List(ctx, f)
	if err != nil {
		return "", err
	}

	rows := make([]spreadsheet.Row, 0, len(list))
	for _, h := range list {
		rows = append(rows, spreadsheet.Row{
			Date:        h.DateValue(),
			UnitName:    h.Genset.Name,
			Description: h.Description,
			Notes:       h.NotesText(),
		})
	}

	sheet, kind := spreadsheet.SheetAll, "all"
	filename := spreadsheet.Filename("", "")
	if filtered {
		sheet, kind = spreadsheet.SheetFiltered, "filtered"
		unitName, err := s.unitName(ctx, f.unitID())
		if err != nil {
			return "", err
		}
		filename = spreadsheet.Filename(unitName, f.Search)
	}

	if err := spreadsheet.Encode(w, sheet, rows); err != nil {
		return "", err
	}
	exportFiles.WithLabelValues(kind).Inc()
	return filename, nil
}

// unitName 机组不存在时文件名不带机组部分
func (s *TransferService) unitName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	g, err := s.store.GetGenset(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return g.Name, nil
}

// Import 读取第一个工作表逐行导入
// 缺少 tanggal/uraian/nama_genset 的行跳过；日期无法解析的行记为失败；
// 存储错误立即中止并连同已完成部分的统计一起返回
func (s *TransferService) Import(ctx context.Context, filename string, r io.Reader) (ImportSummary, error) {
	summary := ImportSummary{SkippedLines: []int{}, Errors: []RowError{}}

	wb, err := spreadsheet.Decode(r)
	if err != nil {
		return summary, invalid("invalid workbook: %v", err)
	}

	for _, rec := range wb.Records {
		summary.TotalRows++

		tanggal := rec.Get(spreadsheet.KeyTanggal)
		uraian := rec.Get(spreadsheet.KeyUraian)
		namaGenset := rec.Get(spreadsheet.KeyNamaGenset)
		if tanggal == "" || uraian == "" || namaGenset == "" {
			summary.Skipped++
			summary.SkippedLines = append(summary.SkippedLines, rec.Line)
			importRows.WithLabelValues("skipped").Inc()
			log.Printf("导入 %s: 跳过第 %d 行，缺少必填列", filename, rec.Line)
			continue
		}

		date, err := spreadsheet.ParseDate(tanggal, wb.Date1904)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, RowError{Line: rec.Line, Reason: err.Error()})
			importRows.WithLabelValues("failed").Inc()
			log.Printf("导入 %s: 第 %d 行失败: %v", filename, rec.Line, err)
			continue
		}

		g, created, err := s.store.FindOrCreateGenset(ctx, namaGenset)
		if err != nil {
			return s.abort(filename, summary, rec.Line, err)
		}
		if created {
			summary.GensetsCreated++
		}

		h := models.History{
			Date:        models.NewDate(date),
			Description: uraian,
			Notes:       models.NotesPtr(rec.Get(spreadsheet.KeyKeterangan)),
			GensetID:    g.ID,
		}
		if err := s.store.CreateHistory(ctx, &h); err != nil {
			return s.abort(filename, summary, rec.Line, err)
		}
		summary.Imported++
		importRows.WithLabelValues("imported").Inc()
		historiesCreated.Inc()
	}

	log.Printf("导入 %s 完成: 共 %d 行, 成功 %d, 跳过 %d, 失败 %d, 新建机组 %d",
		filename, summary.TotalRows, summary.Imported, summary.Skipped, summary.Failed, summary.GensetsCreated)
	s.notify(filename, summary)
	return summary, nil
}

func (s *TransferService) abort(filename string, summary ImportSummary, line int, err error) (ImportSummary, error) {
	summary.Failed++
	summary.Errors = append(summary.Errors, RowError{Line: line, Reason: "store error"})
	importRows.WithLabelValues("failed").Inc()
	log.Printf("导入 %s 在第 %d 行中止（已写入 %d 行）: %v", filename, line, summary.Imported, err)
	s.notify(filename, summary)
	return summary, fmt.Errorf("import aborted at line %d: %w", line, err)
}

func (s *TransferService) notify(filename string, summary ImportSummary) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyImport(filename, summary); err != nil {
		log.Printf("发送导入报告失败: %v", err)
	}
}
