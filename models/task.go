package models

import (
	"time"

	"gorm.io/gorm"
)

// 태스크 상태
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusDelayed    = "delayed"
)

// Task 단계별 태스크 모델
type Task struct {
	ID                  string         `gorm:"type:varchar(50);primaryKey" json:"id"`
	StageID             string         `gorm:"type:varchar(50);index" json:"stageId"`
	Title               string         `gorm:"type:varchar(200)" json:"title"`
	Status              string         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	DueDate             *time.Time     `json:"dueDate"`
	StartDate           *time.Time     `json:"startDate"`
	CompletedDate       *time.Time     `json:"completedDate"`
	IsMandatory         bool           `gorm:"default:false" json:"isMandatory"`
	IsActive            bool           `gorm:"default:true" json:"isActive"`
	AssigneeID          *string        `gorm:"type:varchar(50);index" json:"assigneeId"`
	NotificationEnabled bool           `gorm:"default:true" json:"notificationEnabled"`
	LastNotifiedAt      *time.Time     `json:"lastNotifiedAt"`
	ReminderIntervalMin int            `gorm:"default:60" json:"reminderIntervalMin"`
	Order               int            `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// NormalizeTaskStatus 입력 상태 값 정규화 (waiting은 pending의 별칭으로 수용)
func NormalizeTaskStatus(s string) (string, bool) {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusDelayed:
		return s, true
	case "waiting":
		return TaskStatusPending, true
	}
	return "", false
}
