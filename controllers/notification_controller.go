package controllers

import (
	"net/http"

	"solarpms/config"
	"solarpms/models"
	"solarpms/services"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

// NotificationController 크론 트리거용 알림 엔드포인트
type NotificationController struct {
	Scheduler *services.Scheduler
}

func NewNotificationController(scheduler *services.Scheduler) *NotificationController {
	return &NotificationController{Scheduler: scheduler}
}

// RunDaily 일간 알림 실행 (마감 7일 전/1일 전)
func (nc *NotificationController) RunDaily(c *gin.Context) {
	resp, err := nc.Scheduler.RunDaily(c.Request.Context())
	if err != nil {
		config.Logger.Errorw("일간 알림 실행 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RunHourly 시간당 알림 실행 (오늘 마감/마감 초과)
func (nc *NotificationController) RunHourly(c *gin.Context) {
	resp, err := nc.Scheduler.RunHourly(c.Request.Context())
	if err != nil {
		config.Logger.Errorw("시간당 알림 실행 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterPushToken 푸시 디바이스 토큰 등록 (이미 있으면 갱신)
func (nc *NotificationController) RegisterPushToken(c *gin.Context) {
	var req models.RegisterPushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")

	var existing models.PushToken
	err := config.DB.Where("device_token = ?", req.DeviceToken).First(&existing).Error
	if err == nil {
		if err := config.DB.Model(&existing).
			Updates(map[string]interface{}{"user_id": uid, "platform": req.Platform}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "토큰 갱신 실패"})
			return
		}
		c.JSON(http.StatusOK, existing)
		return
	}

	token := models.PushToken{
		ID:          utils.GenerateID(),
		UserID:      uid,
		DeviceToken: req.DeviceToken,
		Platform:    req.Platform,
	}
	if err := config.DB.Create(&token).Error; err != nil {
		config.Logger.Errorw("토큰 등록 실패", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "토큰 등록 실패"})
		return
	}
	c.JSON(http.StatusOK, token)
}
