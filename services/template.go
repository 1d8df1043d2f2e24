package services

import (
	"time"

	"solarpms/models"
	"solarpms/utils"
)

// StagePlan 템플릿 적용 시 단계 하나에 대한 생성 계획
type StagePlan struct {
	Stage    models.Stage
	IsNew    bool
	NewTasks []models.Task
}

// PlanInstantiation 템플릿 항목과 기존 단계/태스크를 비교해 생성 계획 수립
//
// 같은 이름의 단계가 이미 있으면 재사용하고, 그 단계에 같은 제목의
// 태스크가 이미 있으면 건너뛴다. 같은 템플릿을 두 번 적용해도 두 번째
// 실행은 아무것도 만들지 않는다.
func PlanInstantiation(projectID string, items []models.ChecklistTemplateItem, existing []models.Stage, baseDate time.Time) []StagePlan {
	var plans []*StagePlan
	byName := map[string]*StagePlan{}
	seenTitles := map[string]map[string]bool{}

	for i := range existing {
		plan := &StagePlan{Stage: existing[i]}
		byName[existing[i].Name] = plan
		plans = append(plans, plan)
		titles := map[string]bool{}
		for _, t := range existing[i].Tasks {
			titles[t.Title] = true
		}
		seenTitles[existing[i].Name] = titles
	}

	for _, item := range items {
		plan, exists := byName[item.StageName]
		if !exists {
			plan = &StagePlan{
				Stage: models.Stage{
					ID:        utils.GenerateID(),
					ProjectID: projectID,
					Name:      item.StageName,
					Status:    models.StageStatusPending,
					IsActive:  true,
					Order:     item.StageOrder,
				},
				IsNew: true,
			}
			byName[item.StageName] = plan
			plans = append(plans, plan)
			seenTitles[item.StageName] = map[string]bool{}
		}

		titles := seenTitles[item.StageName]
		if titles[item.Title] {
			continue
		}
		titles[item.Title] = true

		task := models.Task{
			ID:                  utils.GenerateID(),
			StageID:             plan.Stage.ID,
			Title:               item.Title,
			Status:              models.TaskStatusPending,
			IsMandatory:         item.IsMandatory,
			IsActive:            true,
			NotificationEnabled: true,
			Order:               item.Order,
		}
		if item.DefaultDueOffsetDays != nil {
			due := baseDate.AddDate(0, 0, *item.DefaultDueOffsetDays)
			task.DueDate = &due
		}
		plan.NewTasks = append(plan.NewTasks, task)
	}

	result := make([]StagePlan, 0, len(plans))
	for _, plan := range plans {
		if plan.IsNew || len(plan.NewTasks) > 0 {
			result = append(result, *plan)
		}
	}
	return result
}
