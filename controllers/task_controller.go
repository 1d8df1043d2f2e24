package controllers

import (
	"net/http"
	"time"

	"solarpms/config"
	"solarpms/models"
	"solarpms/services"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

type TaskController struct{}

// loadTask 회사 범위 확인을 포함한 태스크 조회
func (tc *TaskController) loadTask(c *gin.Context) (*models.Task, bool) {
	var task models.Task
	err := config.DB.
		Joins("JOIN stages ON stages.id = tasks.stage_id AND stages.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = stages.project_id AND projects.deleted_at IS NULL").
		Where("tasks.id = ? AND projects.company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&task).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "태스크를 찾을 수 없습니다"})
		return nil, false
	}
	return &task, true
}

// CreateTask 단계에 태스크 추가
func (tc *TaskController) CreateTask(c *gin.Context) {
	var stage models.Stage
	err := config.DB.
		Joins("JOIN projects ON projects.id = stages.project_id AND projects.deleted_at IS NULL").
		Where("stages.id = ? AND projects.company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&stage).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "단계를 찾을 수 없습니다"})
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.TaskStatusPending
	if req.Status != "" {
		normalized, ok := models.NormalizeTaskStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 태스크 상태"})
			return
		}
		status = normalized
	}

	task := models.Task{
		ID:                  utils.GenerateID(),
		StageID:             stage.ID,
		Title:               req.Title,
		Status:              status,
		IsMandatory:         req.IsMandatory,
		IsActive:            true,
		AssigneeID:          req.AssigneeID,
		NotificationEnabled: true,
		Order:               req.Order,
	}
	if req.NotificationEnabled != nil {
		task.NotificationEnabled = *req.NotificationEnabled
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := utils.ParseDateField("dueDate", *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		task.DueDate = &due
	}

	if err := config.DB.Create(&task).Error; err != nil {
		config.Logger.Errorw("태스크 생성 실패", "error", err, "stageId", stage.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 생성 실패"})
		return
	}

	if err := services.RecalcStageStatus(config.DB, stage.ID); err != nil {
		config.Logger.Errorw("단계 상태 재계산 실패", "error", err, "stageId", stage.ID)
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask 태스크 수정
func (tc *TaskController) UpdateTask(c *gin.Context) {
	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["due_date"] = nil
		} else {
			due, err := utils.ParseDateField("dueDate", *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["due_date"] = due
		}
	}
	if req.IsMandatory != nil {
		updates["is_mandatory"] = *req.IsMandatory
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			updates["assignee_id"] = nil
		} else {
			updates["assignee_id"] = *req.AssigneeID
		}
	}
	if req.NotificationEnabled != nil {
		updates["notification_enabled"] = *req.NotificationEnabled
	}
	if req.ReminderIntervalMin != nil {
		updates["reminder_interval_min"] = *req.ReminderIntervalMin
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}

	if len(updates) > 0 {
		if err := config.DB.Model(task).Updates(updates).Error; err != nil {
			config.Logger.Errorw("태스크 수정 실패", "error", err, "taskId", task.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 수정 실패"})
			return
		}
		if err := services.RecalcStageStatus(config.DB, task.StageID); err != nil {
			config.Logger.Errorw("단계 상태 재계산 실패", "error", err, "stageId", task.StageID)
		}
	}

	var updated models.Task
	if err := config.DB.Where("id = ?", task.ID).First(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateTaskStatus 태스크 상태 변경
// 완료 시 완료일, 진행 시작 시 시작일을 채우고 단계 상태를 재계산한다.
func (tc *TaskController) UpdateTaskStatus(c *gin.Context) {
	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status가 필요합니다"})
		return
	}

	status, valid := models.NormalizeTaskStatus(req.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 태스크 상태"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.TaskStatusCompleted:
		updates["completed_date"] = now
	case models.TaskStatusInProgress:
		if task.StartDate == nil {
			updates["start_date"] = now
		}
		updates["completed_date"] = nil
	default:
		updates["completed_date"] = nil
	}

	if err := config.DB.Model(task).Updates(updates).Error; err != nil {
		config.Logger.Errorw("태스크 상태 변경 실패", "error", err, "taskId", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 상태 변경 실패"})
		return
	}

	if err := services.RecalcStageStatus(config.DB, task.StageID); err != nil {
		config.Logger.Errorw("단계 상태 재계산 실패", "error", err, "stageId", task.StageID)
	}

	var updated models.Task
	if err := config.DB.Where("id = ?", task.ID).First(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTask 태스크 soft delete 후 단계 상태 재계산
func (tc *TaskController) DeleteTask(c *gin.Context) {
	task, ok := tc.loadTask(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 삭제 실패"})
		return
	}

	if err := services.RecalcStageStatus(config.DB, task.StageID); err != nil {
		config.Logger.Errorw("단계 상태 재계산 실패", "error", err, "stageId", task.StageID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}
