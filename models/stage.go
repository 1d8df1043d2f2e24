package models

import (
	"time"

	"gorm.io/gorm"
)

// 단계 상태 (태스크 상태로부터 항상 파생됨)
const (
	StageStatusPending   = "pending"
	StageStatusActive    = "active"
	StageStatusCompleted = "completed"
)

// Stage 프로젝트 단계 모델 (인허가, 구조물, 전기공사 등)
type Stage struct {
	ID            string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	ProjectID     string         `gorm:"type:varchar(50);index" json:"projectId"`
	Name          string         `gorm:"type:varchar(100)" json:"name"`
	Status        string         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
	Order         int            `gorm:"column:sort_order;default:0" json:"order"`
	StartDate     *time.Time     `json:"startDate"`
	ReceivedDate  *time.Time     `json:"receivedDate"`
	CompletedDate *time.Time     `json:"completedDate"`
	Tasks         []Task         `gorm:"foreignKey:StageID" json:"tasks,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
