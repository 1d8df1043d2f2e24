package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"solarpms/config"
	"solarpms/models"
	"solarpms/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PushService 푸시 알림 채널
//
// 담당자의 등록된 디바이스 토큰으로 건별 전송한다. 전송 실패는 로그만
// 남기고 무시한다 (보조 채널). 엔드포인트/서비스 키 미설정 시 채널
// 전체가 조용히 비활성화된다.
type PushService struct {
	db         *gorm.DB
	endpoint   string
	serviceKey string
	client     *http.Client
	log        *zap.SugaredLogger
}

// NewPushService 설정이 없으면 nil 반환 (채널 비활성화)
func NewPushService(conf config.Config, db *gorm.DB, log *zap.SugaredLogger) *PushService {
	if conf.PushEndpoint == "" || conf.PushServiceKey == "" {
		if log != nil {
			log.Infow("푸시 채널 비활성화 (엔드포인트 미설정)")
		}
		return nil
	}
	return &PushService{
		db:         db,
		endpoint:   conf.PushEndpoint,
		serviceKey: conf.PushServiceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

type pushPayload struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Notify 담당자의 모든 디바이스로 마감 알림 푸시
func (p *PushService) Notify(ctx context.Context, task models.Task) {
	if task.AssigneeID == nil {
		return
	}

	var tokens []models.PushToken
	if err := p.db.WithContext(ctx).Where("user_id = ?", *task.AssigneeID).Find(&tokens).Error; err != nil {
		p.log.Errorw("푸시 토큰 조회 실패", "userId", *task.AssigneeID, "error", err)
		return
	}

	body := "마감일을 확인해 주세요"
	if task.DueDate != nil {
		body = fmt.Sprintf("마감일: %s", task.DueDate.In(utils.KST).Format("2006-01-02"))
	}

	for _, token := range tokens {
		payload := pushPayload{
			To:    token.DeviceToken,
			Title: task.Title,
			Body:  body,
			Data:  map[string]string{"taskId": task.ID},
		}
		if err := p.send(ctx, payload); err != nil {
			p.log.Warnw("푸시 발송 실패", "taskId", task.ID, "platform", token.Platform, "error", err)
		}
	}
}

func (p *PushService) send(ctx context.Context, payload pushPayload) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.serviceKey)

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("푸시 서버 응답 %d", res.StatusCode)
	}
	return nil
}
