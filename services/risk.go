package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"solarpms/models"

	"gorm.io/gorm"
)

// AssessProject 프로젝트의 지연 위험도 평가
//
// 활성 단계의 활성 태스크만 대상으로 하며, 태스크가 하나도 없으면 nil을
// 반환한다 (신호 없음 → 평가 없음). 마감일이 없는 태스크는 지연으로
// 치지 않는다.
//
// score = round(maxDelayDays*stageWeight + overdue*10 + (1-completionRate)*20)
// 상한 100. stageWeight는 상태가 active인 첫 단계의 순서값 (없으면 1).
func AssessProject(project *models.Project, now time.Time) *models.RiskAssessment {
	var all []models.Task
	stageWeight := 0
	for _, stage := range project.Stages {
		if !stage.IsActive {
			continue
		}
		if stageWeight == 0 && stage.Status == models.StageStatusActive {
			stageWeight = stage.Order
		}
		for _, t := range stage.Tasks {
			if t.IsActive {
				all = append(all, t)
			}
		}
	}
	if len(all) == 0 {
		return nil
	}
	if stageWeight == 0 {
		stageWeight = 1
	}

	overdue := 0
	maxDelayDays := 0
	completed := 0
	for _, t := range all {
		if t.Status == models.TaskStatusCompleted {
			completed++
			continue
		}
		if t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		overdue++
		delay := int(math.Ceil(now.Sub(*t.DueDate).Hours() / 24))
		if delay > maxDelayDays {
			maxDelayDays = delay
		}
	}

	completionRate := float64(completed) / float64(len(all))
	score := int(math.Round(float64(maxDelayDays*stageWeight) + float64(overdue*10) + (1-completionRate)*20))
	if score > 100 {
		score = 100
	}

	var factors []string
	if overdue > 0 {
		factors = append(factors, fmt.Sprintf("%d개 태스크 마감 초과", overdue))
	}
	if maxDelayDays > 0 {
		factors = append(factors, fmt.Sprintf("최대 %d일 지연", maxDelayDays))
	}
	if completionRate < 0.5 {
		factors = append(factors, fmt.Sprintf("진행률 %d%%", int(math.Round(completionRate*100))))
	}

	return &models.RiskAssessment{
		Score:            score,
		Severity:         riskSeverity(score),
		DelayDays:        maxDelayDays,
		OverdueTaskCount: overdue,
		CompletionRate:   completionRate,
		Factors:          factors,
	}
}

func riskSeverity(score int) string {
	switch {
	case score >= 80:
		return models.RiskSeverityCritical
	case score >= 50:
		return models.RiskSeverityHigh
	case score >= 30:
		return models.RiskSeverityMedium
	}
	return models.RiskSeverityLow
}

// RiskEntryThreshold 위험 목록 포함 최소 점수 (medium 이상)
// 제품 정책 값이므로 호환성을 위해 유지한다.
const RiskEntryThreshold = 30

// RiskProjects 진행 중 프로젝트 전체에 대한 위험 목록 계산
// 점수 내림차순으로 정렬하며, 기준 미만 프로젝트는 제외한다.
func RiskProjects(db *gorm.DB, companyID string, now time.Time) ([]models.ProjectRiskEntry, error) {
	var projects []models.Project
	err := db.Where("company_id = ? AND status = ?", companyID, models.ProjectStatusInProgress).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Stages.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.ProjectRiskEntry, 0, len(projects))
	for i := range projects {
		assessment := AssessProject(&projects[i], now)
		if assessment == nil || assessment.Score < RiskEntryThreshold {
			continue
		}
		entries = append(entries, models.ProjectRiskEntry{
			ProjectID:      projects[i].ID,
			ProjectName:    projects[i].Name,
			RiskAssessment: *assessment,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

// ProjectProgress 완료 태스크 비율 (%) 계산
func ProjectProgress(project *models.Project) int {
	total := 0
	completed := 0
	for _, stage := range project.Stages {
		if !stage.IsActive {
			continue
		}
		for _, t := range stage.Tasks {
			if !t.IsActive {
				continue
			}
			total++
			if t.Status == models.TaskStatusCompleted {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
