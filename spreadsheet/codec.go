// Package spreadsheet 维护记录与 xlsx 工作簿之间的转换
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetAll 全量导出的工作表名
	SheetAll = "Riwayat Genset"
	// SheetFiltered 筛选导出的工作表名
	SheetFiltered = "Riwayat Genset Filter"

	// BaseFilename 导出文件名前缀
	BaseFilename = "riwayat-genset"

	dateLayout = "2006-01-02"
)

// 导入识别的列键（表头规范化后比较）
const (
	KeyTanggal    = "tanggal"
	KeyUraian     = "uraian"
	KeyKeterangan = "keterangan"
	KeyNamaGenset = "nama_genset"
)

// 导出表头，顺序固定
var exportColumns = []struct {
	Header string
	Width  float64
}{
	{"Tanggal", 15},
	{"Nama Genset", 20},
	{"Uraian", 30},
	{"Keterangan", 30},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Row 导出的一行
type Row struct {
	Date        time.Time
	UnitName    string
	Description string
	Notes       string
}

// Record 导入时读取的一行，Values 以规范化后的表头为键
type Record struct {
	Line   int
	Values map[string]string
}

// Get 返回去除首尾空白的单元格值
func (r Record) Get(key string) string {
	return strings.TrimSpace(r.Values[key])
}

// Workbook 导入解析结果
type Workbook struct {
	Headers  []string
	Records  []Record
	Date1904 bool
}

// Encode 将记录写成单工作表的 xlsx，行顺序与输入一致
func Encode(w io.Writer, sheet string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = SheetAll
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, col := range exportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
		if err := f.SetCellStr(sheet, name+"1", col.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Date.Format(dateLayout),
			row.UnitName,
			row.Description,
			row.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Decode 读取第一个工作表；首个非空行为表头，其余非空行为数据
func Decode(r io.Reader) (Workbook, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return Workbook{}, fmt.Errorf("read upload: %w", err)
	}
	if len(payload) == 0 {
		return Workbook{}, errors.New("file is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return Workbook{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Workbook{}, errors.New("workbook has no sheets")
	}

	// 原始值：日期单元格返回序列号而不是按显示格式渲染的字符串
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Workbook{}, fmt.Errorf("read rows: %w", err)
	}

	var wb Workbook
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.Date1904 = *props.Date1904
	}

	for idx, row := range rows {
		if isBlank(row) {
			continue
		}
		if wb.Headers == nil {
			wb.Headers = make([]string, len(row))
			for i, label := range row {
				wb.Headers[i] = NormalizeHeader(label)
			}
			continue
		}

		rec := Record{Line: idx + 1, Values: make(map[string]string, len(wb.Headers))}
		for i, key := range wb.Headers {
			if key == "" || i >= len(row) {
				continue
			}
			rec.Values[key] = row[i]
		}
		wb.Records = append(wb.Records, rec)
	}

	if wb.Headers == nil {
		return Workbook{}, errors.New("header row not found")
	}
	return wb, nil
}

// NormalizeHeader 表头规范化：去空白、小写、内部空白替换为下划线
// "Nama Genset" 与 "nama_genset" 得到相同的键
func NormalizeHeader(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return whitespaceRun.ReplaceAllString(label, "_")
}

// Filename 根据筛选条件生成导出文件名
func Filename(unitName, search string) string {
	name := BaseFilename
	if unitName != "" {
		name += "-" + slug(unitName)
	}
	if search != "" {
		name += "-search-" + slug(search)
	}
	return name + ".xlsx"
}

func slug(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
