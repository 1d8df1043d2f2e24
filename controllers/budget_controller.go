package controllers

import (
	"net/http"

	"solarpms/config"
	"solarpms/models"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

type BudgetController struct{}

func (bc *BudgetController) loadProject(c *gin.Context) (*models.Project, bool) {
	var project models.Project
	err := config.DB.Where("id = ? AND company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&project).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "프로젝트를 찾을 수 없습니다"})
		return nil, false
	}
	return &project, true
}

// ListBudget 프로젝트 예산 목록과 합계 조회
func (bc *BudgetController) ListBudget(c *gin.Context) {
	project, ok := bc.loadProject(c)
	if !ok {
		return
	}

	var items []models.BudgetItem
	if err := config.DB.Where("project_id = ?", project.ID).
		Order("sort_order ASC").
		Find(&items).Error; err != nil {
		config.Logger.Errorw("예산 목록 조회 실패", "error", err, "projectId", project.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "예산 목록 조회 실패"})
		return
	}

	var plannedTotal, actualTotal int64
	for _, item := range items {
		plannedTotal += item.PlannedAmount
		actualTotal += item.ActualAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        items,
		"plannedTotal": plannedTotal,
		"actualTotal":  actualTotal,
	})
}

// CreateBudgetItem 예산 항목 생성
func (bc *BudgetController) CreateBudgetItem(c *gin.Context) {
	project, ok := bc.loadProject(c)
	if !ok {
		return
	}

	var req models.CreateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.BudgetItem{
		ID:            utils.GenerateID(),
		ProjectID:     project.ID,
		Category:      req.Category,
		Name:          req.Name,
		PlannedAmount: req.PlannedAmount,
		ActualAmount:  req.ActualAmount,
		VendorID:      req.VendorID,
		Order:         req.Order,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		config.Logger.Errorw("예산 항목 생성 실패", "error", err, "projectId", project.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "예산 항목 생성 실패"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (bc *BudgetController) loadItem(c *gin.Context) (*models.BudgetItem, bool) {
	var item models.BudgetItem
	err := config.DB.
		Joins("JOIN projects ON projects.id = budget_items.project_id AND projects.deleted_at IS NULL").
		Where("budget_items.id = ? AND projects.company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "예산 항목을 찾을 수 없습니다"})
		return nil, false
	}
	return &item, true
}

// UpdateBudgetItem 예산 항목 수정
func (bc *BudgetController) UpdateBudgetItem(c *gin.Context) {
	item, ok := bc.loadItem(c)
	if !ok {
		return
	}

	var req models.UpdateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PlannedAmount != nil {
		updates["planned_amount"] = *req.PlannedAmount
	}
	if req.ActualAmount != nil {
		updates["actual_amount"] = *req.ActualAmount
	}
	if req.VendorID != nil {
		if *req.VendorID == "" {
			updates["vendor_id"] = nil
		} else {
			updates["vendor_id"] = *req.VendorID
		}
	}

	if len(updates) > 0 {
		if err := config.DB.Model(item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "예산 항목 수정 실패"})
			return
		}
	}
	c.JSON(http.StatusOK, item)
}

// DeleteBudgetItem 예산 항목 soft delete
func (bc *BudgetController) DeleteBudgetItem(c *gin.Context) {
	item, ok := bc.loadItem(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "예산 항목 삭제 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}

// ReorderBudget 예산 항목 순서 일괄 변경 (전체 적용 또는 전체 실패)
func (bc *BudgetController) ReorderBudget(c *gin.Context) {
	project, ok := bc.loadProject(c)
	if !ok {
		return
	}

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 전부 이 프로젝트의 항목인지 먼저 확인한다
	// (RowsAffected는 값이 같은 갱신에서 0이 될 수 있어 근거가 못 된다)
	ids := reorderIDs(req.Orders)
	var count int64
	if err := tx.Model(&models.BudgetItem{}).
		Where("id IN ? AND project_id = ?", ids, project.ID).
		Count(&count).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "순서 변경 실패"})
		return
	}
	if count != int64(len(ids)) {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "프로젝트에 없는 예산 항목이 있습니다"})
		return
	}

	for _, entry := range req.Orders {
		if err := tx.Model(&models.BudgetItem{}).
			Where("id = ? AND project_id = ?", entry.ID, project.ID).
			Update("sort_order", entry.Order).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "순서 변경 실패"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "순서 변경 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "순서가 변경되었습니다"})
}
