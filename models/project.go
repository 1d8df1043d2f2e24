package models

import (
	"time"

	"gorm.io/gorm"
)

// 프로젝트 상태
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

// Project 발전소 프로젝트 모델
type Project struct {
	ID         string  `gorm:"type:varchar(50);primaryKey" json:"id"`
	CompanyID  string  `gorm:"type:varchar(50);index" json:"companyId"`
	Name       string  `gorm:"type:varchar(200)" json:"name"`
	Status     string  `gorm:"type:varchar(20);default:'planning'" json:"status"`
	CapacityKW float64 `gorm:"default:0" json:"capacityKw"`
	Address    string  `gorm:"type:varchar(255)" json:"address"`
	// 위험도 점수 저장 컬럼 (PersistRiskScore 설정 시에만 기록, 기본은 조회 시 재계산)
	RiskScore *int           `json:"-"`
	Stages    []Stage        `gorm:"foreignKey:ProjectID" json:"stages,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsValidProjectStatus 프로젝트 상태 값 검증
func IsValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}
