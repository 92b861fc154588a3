package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout 日期格式（导入导出与请求参数通用）
const DateLayout = "2006-01-02"

// History 发电机组维护记录
type History struct {
	ID          string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Date        datatypes.Date `json:"date" gorm:"not null;index"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Notes       *string        `json:"notes" gorm:"type:text"`
	GensetID    string         `json:"unitId" gorm:"type:varchar(36);not null;index"`
	Genset      Genset         `json:"unit" gorm:"foreignKey:GensetID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (History) TableName() string {
	return "histories"
}

// BeforeCreate 生成 uuid 主键
func (h *History) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// NotesText 返回备注，空值时为 ""
func (h History) NotesText() string {
	if h.Notes == nil {
		return ""
	}
	return *h.Notes
}

// DateValue 返回日期（UTC 零点）
func (h History) DateValue() time.Time {
	return time.Time(h.Date)
}

// NewDate 截掉时分秒，统一为 UTC 零点
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// NotesPtr 空字符串视为未填写
func NotesPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
