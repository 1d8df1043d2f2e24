package controllers

import (
	"net/http"

	"solarpms/config"
	"solarpms/models"
	"solarpms/services"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StageController struct{}

// loadStage 회사 범위 확인을 포함한 단계 조회
func (sc *StageController) loadStage(c *gin.Context) (*models.Stage, bool) {
	var stage models.Stage
	err := config.DB.
		Joins("JOIN projects ON projects.id = stages.project_id AND projects.deleted_at IS NULL").
		Where("stages.id = ? AND projects.company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&stage).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "단계를 찾을 수 없습니다"})
		return nil, false
	}
	return &stage, true
}

// ListStages 프로젝트의 단계 목록 조회 (태스크 포함)
func (sc *StageController) ListStages(c *gin.Context) {
	var project models.Project
	if err := config.DB.Where("id = ? AND company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "프로젝트를 찾을 수 없습니다"})
		return
	}

	var stages []models.Stage
	if err := config.DB.Where("project_id = ?", project.ID).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&stages).Error; err != nil {
		config.Logger.Errorw("단계 목록 조회 실패", "error", err, "projectId", project.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 목록 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, stages)
}

// UpdateStage 단계 이름/순서 수정
func (sc *StageController) UpdateStage(c *gin.Context) {
	stage, ok := sc.loadStage(c)
	if !ok {
		return
	}

	var req models.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}
	if len(updates) > 0 {
		if err := config.DB.Model(stage).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 수정 실패"})
			return
		}
	}
	c.JSON(http.StatusOK, stage)
}

// UpdateStageActive 단계 활성화 토글
// 다시 활성화하면 태스크 상태로부터 단계 상태를 재계산한다.
// 비활성화된 단계의 상태는 수동 관리로 남는다.
func (sc *StageController) UpdateStageActive(c *gin.Context) {
	stage, ok := sc.loadStage(c)
	if !ok {
		return
	}

	var req models.UpdateStageActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isActive가 필요합니다"})
		return
	}

	if err := config.DB.Model(stage).Update("is_active", *req.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 수정 실패"})
		return
	}

	if *req.IsActive {
		if err := services.RecalcStageStatus(config.DB, stage.ID); err != nil {
			config.Logger.Errorw("단계 상태 재계산 실패", "error", err, "stageId", stage.ID)
		}
	}

	var updated models.Stage
	if err := config.DB.Where("id = ?", stage.ID).First(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateStageDates 단계 일자 수정 (YYYY-MM-DD)
func (sc *StageController) UpdateStageDates(c *gin.Context) {
	stage, ok := sc.loadStage(c)
	if !ok {
		return
	}

	var req models.UpdateStageDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	fields := []struct {
		name   string
		column string
		value  *string
	}{
		{"startDate", "start_date", req.StartDate},
		{"receivedDate", "received_date", req.ReceivedDate},
		{"completedDate", "completed_date", req.CompletedDate},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if *f.value == "" {
			updates[f.column] = nil
			continue
		}
		parsed, err := utils.ParseDateField(f.name, *f.value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates[f.column] = parsed
	}

	if len(updates) > 0 {
		if err := config.DB.Model(stage).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 일자 수정 실패"})
			return
		}
	}

	var updated models.Stage
	if err := config.DB.Where("id = ?", stage.ID).First(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
