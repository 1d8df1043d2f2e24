package models

import (
	"time"

	"gorm.io/gorm"
)

// Company 회사(테넌트) 모델
type Company struct {
	ID        string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(100)" json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
