package services

import (
	"testing"
	"time"

	"solarpms/models"
	"solarpms/utils"
)

func offsetDays(n int) *int { return &n }

func templateItems() []models.ChecklistTemplateItem {
	return []models.ChecklistTemplateItem{
		{StageName: "인허가", StageOrder: 1, Title: "개발행위 허가", Order: 1, IsMandatory: true, DefaultDueOffsetDays: offsetDays(30)},
		{StageName: "인허가", StageOrder: 1, Title: "발전사업 허가", Order: 2},
		{StageName: "공사", StageOrder: 2, Title: "구조물 설치", Order: 1},
	}
}

func TestPlanInstantiation_FreshProject(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, utils.KST)
	plans := PlanInstantiation("p1", templateItems(), nil, base)

	if len(plans) != 2 {
		t.Fatalf("단계 수 = %d, want 2", len(plans))
	}
	if !plans[0].IsNew || !plans[1].IsNew {
		t.Error("빈 프로젝트에서는 모든 단계가 새로 생성되어야 함")
	}
	if len(plans[0].NewTasks) != 2 {
		t.Errorf("인허가 태스크 수 = %d, want 2", len(plans[0].NewTasks))
	}
	if len(plans[1].NewTasks) != 1 {
		t.Errorf("공사 태스크 수 = %d, want 1", len(plans[1].NewTasks))
	}

	task := plans[0].NewTasks[0]
	if task.StageID != plans[0].Stage.ID {
		t.Error("태스크가 단계 ID를 참조해야 함")
	}
	wantDue := base.AddDate(0, 0, 30)
	if task.DueDate == nil || !task.DueDate.Equal(wantDue) {
		t.Errorf("dueDate = %v, want %v", task.DueDate, wantDue)
	}
	if plans[0].NewTasks[1].DueDate != nil {
		t.Error("오프셋 없는 항목은 마감일이 없어야 함")
	}
}

func TestPlanInstantiation_SecondRunCreatesNothing(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, utils.KST)
	first := PlanInstantiation("p1", templateItems(), nil, base)

	// 첫 적용 결과를 기존 단계/태스크로 재구성해 같은 템플릿을 재적용
	existing := make([]models.Stage, len(first))
	for i, plan := range first {
		existing[i] = plan.Stage
		existing[i].Tasks = plan.NewTasks
	}

	second := PlanInstantiation("p1", templateItems(), existing, base)
	if len(second) != 0 {
		t.Errorf("재적용 시 생성 계획 = %d개, want 0 (중복 생성 방지)", len(second))
	}
}

func TestPlanInstantiation_ReusesExistingStage(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, utils.KST)
	existing := []models.Stage{
		{
			ID:        "s-existing",
			ProjectID: "p1",
			Name:      "인허가",
			Tasks: []models.Task{
				{ID: "t-existing", StageID: "s-existing", Title: "개발행위 허가"},
			},
		},
	}

	plans := PlanInstantiation("p1", templateItems(), existing, base)

	var permit *StagePlan
	for i := range plans {
		if plans[i].Stage.Name == "인허가" {
			permit = &plans[i]
		}
	}
	if permit == nil {
		t.Fatal("인허가 단계 계획이 없음")
	}
	if permit.IsNew {
		t.Error("기존 단계는 재사용해야 함")
	}
	if permit.Stage.ID != "s-existing" {
		t.Errorf("stage ID = %q, want s-existing", permit.Stage.ID)
	}
	if len(permit.NewTasks) != 1 {
		t.Fatalf("추가 태스크 수 = %d, want 1 (기존 제목은 건너뜀)", len(permit.NewTasks))
	}
	if permit.NewTasks[0].Title != "발전사업 허가" {
		t.Errorf("추가 태스크 = %q, want 발전사업 허가", permit.NewTasks[0].Title)
	}
	if permit.NewTasks[0].StageID != "s-existing" {
		t.Error("추가 태스크는 기존 단계 ID를 참조해야 함")
	}
}

func TestPlanInstantiation_DuplicateItemTitles(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, utils.KST)
	items := []models.ChecklistTemplateItem{
		{StageName: "공사", Title: "구조물 설치", Order: 1},
		{StageName: "공사", Title: "구조물 설치", Order: 2},
	}

	plans := PlanInstantiation("p1", items, nil, base)
	if len(plans) != 1 {
		t.Fatalf("단계 수 = %d, want 1", len(plans))
	}
	if len(plans[0].NewTasks) != 1 {
		t.Errorf("태스크 수 = %d, want 1 (템플릿 내 중복 제목 제거)", len(plans[0].NewTasks))
	}
}
