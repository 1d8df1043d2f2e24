package models

import (
	"time"

	"gorm.io/gorm"
)

// ChecklistTemplate 체크리스트 템플릿 모델
// 프로젝트 생성 시 단계/태스크의 청사진으로 사용된다.
type ChecklistTemplate struct {
	ID        string                  `gorm:"type:varchar(50);primaryKey" json:"id"`
	CompanyID string                  `gorm:"type:varchar(50);index" json:"companyId"`
	Name      string                  `gorm:"type:varchar(100)" json:"name"`
	Items     []ChecklistTemplateItem `gorm:"foreignKey:TemplateID" json:"items,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
	DeletedAt gorm.DeletedAt          `gorm:"index" json:"-"`
}

// ChecklistTemplateItem 템플릿 항목 모델
type ChecklistTemplateItem struct {
	ID                   string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	TemplateID           string         `gorm:"type:varchar(50);index" json:"templateId"`
	StageName            string         `gorm:"type:varchar(100)" json:"stageName"`
	StageOrder           int            `gorm:"default:0" json:"stageOrder"`
	Title                string         `gorm:"type:varchar(200)" json:"title"`
	Order                int            `gorm:"column:sort_order;default:0" json:"order"`
	IsMandatory          bool           `gorm:"default:false" json:"isMandatory"`
	DefaultDueOffsetDays *int           `json:"defaultDueOffsetDays"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
