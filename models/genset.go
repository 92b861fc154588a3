package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genset 发电机组
type Genset struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:191;not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Genset) TableName() string {
	return "gensets"
}

// BeforeCreate 生成 uuid 主键
func (g *Genset) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
