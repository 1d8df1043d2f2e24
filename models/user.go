package models

import (
	"time"

	"gorm.io/gorm"
)

// User 사용자(담당자) 모델
type User struct {
	ID        string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(50)" json:"name"`
	Email     string         `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	CompanyID string         `gorm:"type:varchar(50);index" json:"companyId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PushToken 푸시 알림 디바이스 토큰
type PushToken struct {
	ID          string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID      string         `gorm:"type:varchar(50);index" json:"userId"`
	DeviceToken string         `gorm:"type:varchar(255);uniqueIndex" json:"deviceToken"`
	Platform    string         `gorm:"type:varchar(20)" json:"platform"` // ios, android, web
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
