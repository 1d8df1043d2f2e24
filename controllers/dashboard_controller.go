package controllers

import (
	"net/http"
	"time"

	"solarpms/config"
	"solarpms/models"
	"solarpms/services"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardController 대시보드 조회
// PersistRiskScore는 기동 시 설정에서 주입된다. 꺼져 있으면(기본값) 위험도
// 점수는 조회할 때마다 계산만 하고 저장하지 않는다.
type DashboardController struct {
	PersistRiskScore bool
}

// FullSummary 대시보드 전체 요약
// 상태별 프로젝트 수, 태스크 집계, 7일 내 마감, 위험 프로젝트 목록을 반환한다.
func (dc *DashboardController) FullSummary(c *gin.Context) {
	companyID := c.GetString("companyId")
	now := time.Now()

	// 상태별 프로젝트 수
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := config.DB.Model(&models.Project{}).
		Select("status, count(*) as count").
		Where("company_id = ?", companyID).
		Group("status").
		Scan(&counts).Error; err != nil {
		config.Logger.Errorw("프로젝트 집계 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대시보드 조회 실패"})
		return
	}
	projectCounts := map[string]int64{}
	for _, pc := range counts {
		projectCounts[pc.Status] = pc.Count
	}

	// 회사 범위 태스크 집계 (활성 태스크만)
	taskBase := config.DB.Model(&models.Task{}).
		Joins("JOIN stages ON stages.id = tasks.stage_id AND stages.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = stages.project_id AND projects.deleted_at IS NULL").
		Where("projects.company_id = ? AND tasks.is_active = ?", companyID, true)

	var totalTasks, completedTasks, overdueTasks int64
	if err := taskBase.Session(&gorm.Session{}).Count(&totalTasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대시보드 조회 실패"})
		return
	}
	if err := taskBase.Session(&gorm.Session{}).
		Where("tasks.status = ?", models.TaskStatusCompleted).
		Count(&completedTasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대시보드 조회 실패"})
		return
	}
	if err := taskBase.Session(&gorm.Session{}).
		Where("tasks.status <> ? AND tasks.due_date < ?", models.TaskStatusCompleted, now).
		Count(&overdueTasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대시보드 조회 실패"})
		return
	}

	// 7일 내 마감 태스크
	type upcomingRow struct {
		models.Task
		ProjectName string
		StageName   string
	}
	weekEnd := utils.StartOfDayKST(now).AddDate(0, 0, 8)
	var rows []upcomingRow
	if err := config.DB.Model(&models.Task{}).
		Select("tasks.*, projects.name as project_name, stages.name as stage_name").
		Joins("JOIN stages ON stages.id = tasks.stage_id AND stages.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = stages.project_id AND projects.deleted_at IS NULL").
		Where("projects.company_id = ? AND tasks.is_active = ? AND tasks.status <> ?",
			companyID, true, models.TaskStatusCompleted).
		Where("tasks.due_date >= ? AND tasks.due_date < ?", utils.StartOfDayKST(now), weekEnd).
		Order("tasks.due_date ASC").
		Limit(20).
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대시보드 조회 실패"})
		return
	}

	upcoming := make([]models.UpcomingTask, len(rows))
	for i, row := range rows {
		upcoming[i] = models.UpcomingTask{
			TaskID:      row.ID,
			Title:       row.Title,
			ProjectName: row.ProjectName,
			StageName:   row.StageName,
			DueDate:     row.DueDate,
			DaysLeft:    utils.DiffDaysKST(now, *row.DueDate),
		}
	}

	riskProjects, err := services.RiskProjects(config.DB, companyID, now)
	if err != nil {
		config.Logger.Errorw("위험 목록 계산 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대시보드 조회 실패"})
		return
	}

	c.JSON(http.StatusOK, models.DashboardSummaryResponse{
		ProjectCounts:  projectCounts,
		TotalTasks:     totalTasks,
		CompletedTasks: completedTasks,
		OverdueTasks:   overdueTasks,
		UpcomingTasks:  upcoming,
		RiskProjects:   riskProjects,
	})
}

// RiskProjects 위험 프로젝트 목록 (점수 30 이상, 내림차순)
func (dc *DashboardController) RiskProjects(c *gin.Context) {
	entries, err := services.RiskProjects(config.DB, c.GetString("companyId"), time.Now())
	if err != nil {
		config.Logger.Errorw("위험 목록 계산 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "위험 목록 조회 실패"})
		return
	}

	if dc.PersistRiskScore {
		for _, entry := range entries {
			if err := config.DB.Model(&models.Project{}).
				Where("id = ?", entry.ProjectID).
				Update("risk_score", entry.Score).Error; err != nil {
				config.Logger.Warnw("위험도 점수 저장 실패", "projectId", entry.ProjectID, "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, entries)
}
