package models

import "time"

// RiskAssessment 프로젝트 지연 위험도 평가 결과 (조회 시마다 계산, 저장하지 않음)
type RiskAssessment struct {
	Score            int      `json:"score"` // 0~100
	Severity         string   `json:"severity"`
	DelayDays        int      `json:"delayDays"`
	OverdueTaskCount int      `json:"overdueTaskCount"`
	CompletionRate   float64  `json:"completionRate"`
	Factors          []string `json:"factors"`
}

// 위험도 등급
const (
	RiskSeverityLow      = "low"
	RiskSeverityMedium   = "medium"
	RiskSeverityHigh     = "high"
	RiskSeverityCritical = "critical"
)

// ProjectRiskEntry 대시보드 위험 프로젝트 목록 항목
type ProjectRiskEntry struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	RiskAssessment
}

// UserResponse 사용자 응답 구조체
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
}

// ProjectResponse 프로젝트 응답 구조체 (진행률 등 파생 필드 포함)
type ProjectResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	CapacityKW float64         `json:"capacityKw"`
	Address    string          `json:"address"`
	Progress   int             `json:"progress"` // 완료 태스크 비율 (%)
	Risk       *RiskAssessment `json:"risk,omitempty"`
	Stages     []Stage         `json:"stages,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// DashboardSummaryResponse 대시보드 전체 요약 응답
type DashboardSummaryResponse struct {
	ProjectCounts  map[string]int64   `json:"projectCounts"` // 상태별 프로젝트 수
	TotalTasks     int64              `json:"totalTasks"`
	CompletedTasks int64              `json:"completedTasks"`
	OverdueTasks   int64              `json:"overdueTasks"`
	UpcomingTasks  []UpcomingTask     `json:"upcomingTasks"` // 7일 내 마감
	RiskProjects   []ProjectRiskEntry `json:"riskProjects"`
}

// UpcomingTask 마감 임박 태스크 요약
type UpcomingTask struct {
	TaskID      string     `json:"taskId"`
	Title       string     `json:"title"`
	ProjectName string     `json:"projectName"`
	StageName   string     `json:"stageName"`
	DueDate     *time.Time `json:"dueDate"`
	DaysLeft    int        `json:"daysLeft"`
}

// NotificationRunResponse 알림 스케줄러 실행 결과 응답
type NotificationRunResponse struct {
	Mode     string        `json:"mode"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Reason   string        `json:"reason,omitempty"`
	Failures []SendFailure `json:"failures,omitempty"`
}

// SendFailure 개별 알림 발송 실패 기록
type SendFailure struct {
	TaskID string `json:"taskId"`
	Error  string `json:"error"`
}
