package controllers

import (
	"net/http"

	"solarpms/config"
	"solarpms/models"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct{}

// DevLogin 개발용 로그인: 이메일로 사용자를 찾아 토큰 발급
// 사용자가 없으면 생성하지 않고 오류를 반환한다 (암묵적 생성 금지).
func (ac *AuthController) DevLogin(c *gin.Context) {
	var req models.DevLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "이메일이 필요합니다"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "사용자를 찾을 수 없습니다"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.CompanyID)
	if err != nil {
		config.Logger.Errorw("토큰 생성 실패", "error", err, "uid", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "토큰 생성 실패"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": models.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CompanyID: user.CompanyID,
		},
	})
}
