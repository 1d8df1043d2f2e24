package services

import (
	"errors"

	"solarpms/config"
	"solarpms/models"

	"gorm.io/gorm"
)

// DeriveStageStatus 활성 태스크 목록으로부터 단계 상태를 계산
//
// 규칙:
//   - 태스크가 없으면 pending
//   - 전부 completed면 completed
//   - in_progress가 하나라도 있거나, completed가 하나라도 있으면(전부는 아님) active
//   - 그 외 pending
//
// completed 하나에 나머지 pending이어도 active로 본다.
// "조금이라도 진행되면 진행 중"이라는 정책이므로 바꾸면 안 된다.
func DeriveStageStatus(tasks []models.Task) string {
	active := tasks[:0:0]
	for _, t := range tasks {
		if t.IsActive {
			active = append(active, t)
		}
	}

	if len(active) == 0 {
		return models.StageStatusPending
	}

	completed := 0
	inProgress := false
	for _, t := range active {
		switch t.Status {
		case models.TaskStatusCompleted:
			completed++
		case models.TaskStatusInProgress:
			inProgress = true
		}
	}

	if completed == len(active) {
		return models.StageStatusCompleted
	}
	if inProgress || completed > 0 {
		return models.StageStatusActive
	}
	return models.StageStatusPending
}

// RecalcStageStatus 단계 상태 재계산 후 변경된 경우에만 저장
//
// 태스크 생성/수정/상태변경/삭제/활성화 토글 이후 반드시 호출해야 한다.
// 비활성 단계는 수동 관리 대상이므로 건드리지 않는다.
func RecalcStageStatus(db *gorm.DB, stageID string) error {
	var stage models.Stage
	if err := db.Where("id = ?", stageID).First(&stage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !stage.IsActive {
		return nil
	}

	var tasks []models.Task
	if err := db.Where("stage_id = ? AND is_active = ?", stageID, true).
		Order("sort_order ASC").Find(&tasks).Error; err != nil {
		return err
	}

	status := DeriveStageStatus(tasks)
	if status == stage.Status {
		return nil
	}

	// 조건부 UPDATE로 불필요한 쓰기와 경합 구간을 줄인다
	result := db.Model(&models.Stage{}).
		Where("id = ? AND status <> ?", stageID, status).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 && config.Logger != nil {
		config.Logger.Infow("단계 상태 갱신",
			"stageId", stageID,
			"from", stage.Status,
			"to", status,
		)
	}
	return nil
}
