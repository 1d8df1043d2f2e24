package controllers

import (
	"net/http"

	"solarpms/config"
	"solarpms/models"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChecklistController struct{}

func (cc *ChecklistController) loadTemplate(c *gin.Context) (*models.ChecklistTemplate, bool) {
	var template models.ChecklistTemplate
	err := config.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC, sort_order ASC")
	}).Where("id = ? AND company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&template).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "템플릿을 찾을 수 없습니다"})
		return nil, false
	}
	return &template, true
}

// ListTemplates 회사 체크리스트 템플릿 목록 조회
func (cc *ChecklistController) ListTemplates(c *gin.Context) {
	var templates []models.ChecklistTemplate
	err := config.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC, sort_order ASC")
	}).Where("company_id = ?", c.GetString("companyId")).
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		config.Logger.Errorw("템플릿 목록 조회 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 목록 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// CreateTemplate 체크리스트 템플릿 생성 (항목 포함, 단일 트랜잭션)
func (cc *ChecklistController) CreateTemplate(c *gin.Context) {
	var req models.ChecklistTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template := models.ChecklistTemplate{
		ID:        utils.GenerateID(),
		CompanyID: c.GetString("companyId"),
		Name:      req.Name,
	}
	for _, item := range req.Items {
		template.Items = append(template.Items, models.ChecklistTemplateItem{
			ID:                   utils.GenerateID(),
			TemplateID:           template.ID,
			StageName:            item.StageName,
			StageOrder:           item.StageOrder,
			Title:                item.Title,
			Order:                item.Order,
			IsMandatory:          item.IsMandatory,
			DefaultDueOffsetDays: item.DefaultDueOffsetDays,
		})
	}

	if err := config.DB.Create(&template).Error; err != nil {
		config.Logger.Errorw("템플릿 생성 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 생성 실패"})
		return
	}
	c.JSON(http.StatusOK, template)
}

// GetTemplate 템플릿 상세 조회
func (cc *ChecklistController) GetTemplate(c *gin.Context) {
	template, ok := cc.loadTemplate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, template)
}

// UpdateTemplate 템플릿 이름/항목 전체 교체
// 항목 삭제와 재생성이 한 트랜잭션에서 이루어진다.
func (cc *ChecklistController) UpdateTemplate(c *gin.Context) {
	template, ok := cc.loadTemplate(c)
	if !ok {
		return
	}

	var req models.ChecklistTemplateRequest
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

	if err := tx.Model(template).Update("name", req.Name).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 수정 실패"})
		return
	}
	if err := tx.Where("template_id = ?", template.ID).
		Delete(&models.ChecklistTemplateItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 수정 실패"})
		return
	}
	for _, item := range req.Items {
		record := models.ChecklistTemplateItem{
			ID:                   utils.GenerateID(),
			TemplateID:           template.ID,
			StageName:            item.StageName,
			StageOrder:           item.StageOrder,
			Title:                item.Title,
			Order:                item.Order,
			IsMandatory:          item.IsMandatory,
			DefaultDueOffsetDays: item.DefaultDueOffsetDays,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 수정 실패"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 수정 실패"})
		return
	}

	updated, ok := cc.loadTemplate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTemplate 템플릿과 항목 soft delete
func (cc *ChecklistController) DeleteTemplate(c *gin.Context) {
	template, ok := cc.loadTemplate(c)
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("template_id = ?", template.ID).
		Delete(&models.ChecklistTemplateItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 삭제 실패"})
		return
	}
	if err := tx.Delete(template).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 삭제 실패"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 삭제 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}

// ReorderItems 템플릿 항목 순서 일괄 변경
// 전체가 한 트랜잭션이다. 하나라도 실패하면 아무것도 적용되지 않는다.
func (cc *ChecklistController) ReorderItems(c *gin.Context) {
	template, ok := cc.loadTemplate(c)
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

	// 전부 이 템플릿의 항목인지 먼저 확인한다
	// (RowsAffected는 값이 같은 갱신에서 0이 될 수 있어 근거가 못 된다)
	ids := reorderIDs(req.Orders)
	var count int64
	if err := tx.Model(&models.ChecklistTemplateItem{}).
		Where("id IN ? AND template_id = ?", ids, template.ID).
		Count(&count).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "순서 변경 실패"})
		return
	}
	if count != int64(len(ids)) {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "템플릿에 없는 항목이 있습니다"})
		return
	}

	for _, entry := range req.Orders {
		if err := tx.Model(&models.ChecklistTemplateItem{}).
			Where("id = ? AND template_id = ?", entry.ID, template.ID).
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
