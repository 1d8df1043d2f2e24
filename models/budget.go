package models

import (
	"time"

	"gorm.io/gorm"
)

// BudgetItem 프로젝트 예산 항목 모델
type BudgetItem struct {
	ID            string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	ProjectID     string         `gorm:"type:varchar(50);index" json:"projectId"`
	Category      string         `gorm:"type:varchar(50)" json:"category"` // 자재, 공사, 인허가 등
	Name          string         `gorm:"type:varchar(200)" json:"name"`
	PlannedAmount int64          `gorm:"default:0" json:"plannedAmount"`
	ActualAmount  int64          `gorm:"default:0" json:"actualAmount"`
	VendorID      *string        `gorm:"type:varchar(50)" json:"vendorId"`
	Order         int            `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Vendor 협력업체 모델
type Vendor struct {
	ID        string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	CompanyID string         `gorm:"type:varchar(50);index" json:"companyId"`
	Name      string         `gorm:"type:varchar(100)" json:"name"`
	Category  string         `gorm:"type:varchar(50)" json:"category"`
	Contact   string         `gorm:"type:varchar(100)" json:"contact"`
	Memo      string         `gorm:"type:text" json:"memo"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
