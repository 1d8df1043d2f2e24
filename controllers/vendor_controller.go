package controllers

import (
	"net/http"

	"solarpms/config"
	"solarpms/models"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

type VendorController struct{}

func (vc *VendorController) loadVendor(c *gin.Context) (*models.Vendor, bool) {
	var vendor models.Vendor
	err := config.DB.Where("id = ? AND company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&vendor).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "업체를 찾을 수 없습니다"})
		return nil, false
	}
	return &vendor, true
}

// ListVendors 회사 협력업체 목록 조회
func (vc *VendorController) ListVendors(c *gin.Context) {
	query := config.DB.Where("company_id = ?", c.GetString("companyId"))
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var vendors []models.Vendor
	if err := query.Order("name ASC").Find(&vendors).Error; err != nil {
		config.Logger.Errorw("업체 목록 조회 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "업체 목록 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// CreateVendor 협력업체 등록
func (vc *VendorController) CreateVendor(c *gin.Context) {
	var req models.VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vendor := models.Vendor{
		ID:        utils.GenerateID(),
		CompanyID: c.GetString("companyId"),
		Name:      req.Name,
		Category:  req.Category,
		Contact:   req.Contact,
		Memo:      req.Memo,
	}
	if err := config.DB.Create(&vendor).Error; err != nil {
		config.Logger.Errorw("업체 등록 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "업체 등록 실패"})
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// GetVendor 협력업체 상세 조회
func (vc *VendorController) GetVendor(c *gin.Context) {
	vendor, ok := vc.loadVendor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// UpdateVendor 협력업체 수정
func (vc *VendorController) UpdateVendor(c *gin.Context) {
	vendor, ok := vc.loadVendor(c)
	if !ok {
		return
	}

	var req models.VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
		"contact":  req.Contact,
		"memo":     req.Memo,
	}
	if err := config.DB.Model(vendor).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "업체 수정 실패"})
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// DeleteVendor 협력업체 soft delete
func (vc *VendorController) DeleteVendor(c *gin.Context) {
	vendor, ok := vc.loadVendor(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "업체 삭제 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}
