package services

import (
	"testing"
	"time"

	"solarpms/models"
	"solarpms/utils"
)

func TestAssessProject_NoTasks(t *testing.T) {
	project := &models.Project{
		Stages: []models.Stage{
			{IsActive: true, Status: models.StageStatusActive, Order: 1},
		},
	}
	if got := AssessProject(project, time.Now()); got != nil {
		t.Errorf("태스크 없는 프로젝트는 평가 없음, got %+v", got)
	}
}

func TestAssessProject_OverdueTask(t *testing.T) {
	now := time.Date(2024, 6, 18, 10, 0, 0, 0, utils.KST)
	due := now.AddDate(0, 0, -10)
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusActive,
				Order:    2,
				Tasks: []models.Task{
					{Status: models.TaskStatusPending, DueDate: &due, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	if got.DelayDays != 10 {
		t.Errorf("delayDays = %d, want 10", got.DelayDays)
	}
	if got.OverdueTaskCount != 1 {
		t.Errorf("overdueTaskCount = %d, want 1", got.OverdueTaskCount)
	}
	if got.CompletionRate != 0 {
		t.Errorf("completionRate = %v, want 0", got.CompletionRate)
	}
	// round(10*2 + 1*10 + 1*20) = 50
	if got.Score != 50 {
		t.Errorf("score = %d, want 50", got.Score)
	}
	if got.Severity != models.RiskSeverityHigh {
		t.Errorf("severity = %q, want high", got.Severity)
	}
}

func TestAssessProject_AllCompleted(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -3)
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusCompleted,
				Order:    1,
				Tasks: []models.Task{
					{Status: models.TaskStatusCompleted, DueDate: &past, IsActive: true},
					{Status: models.TaskStatusCompleted, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
	if got.CompletionRate != 1 {
		t.Errorf("completionRate = %v, want 1", got.CompletionRate)
	}
	if got.OverdueTaskCount != 0 {
		t.Errorf("overdueTaskCount = %d, want 0 (완료 태스크는 지연 아님)", got.OverdueTaskCount)
	}
}

func TestAssessProject_MissingDueDateNotOverdue(t *testing.T) {
	now := time.Now()
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusActive,
				Order:    3,
				Tasks: []models.Task{
					{Status: models.TaskStatusPending, IsActive: true},
					{Status: models.TaskStatusInProgress, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	if got.OverdueTaskCount != 0 {
		t.Errorf("overdueTaskCount = %d, want 0 (마감일 없음)", got.OverdueTaskCount)
	}
	// round(0*3 + 0 + 1*20) = 20
	if got.Score != 20 {
		t.Errorf("score = %d, want 20", got.Score)
	}
	if got.Severity != models.RiskSeverityLow {
		t.Errorf("severity = %q, want low", got.Severity)
	}
}

func TestAssessProject_DefaultStageWeight(t *testing.T) {
	now := time.Now()
	due := now.AddDate(0, 0, -5)
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusPending, // active 단계 없음 → 가중치 1
				Order:    4,
				Tasks: []models.Task{
					{Status: models.TaskStatusPending, DueDate: &due, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	// round(5*1 + 10 + 20) = 35
	if got.Score != 35 {
		t.Errorf("score = %d, want 35", got.Score)
	}
}

func TestAssessProject_ScoreCapped(t *testing.T) {
	now := time.Now()
	due := now.AddDate(0, 0, -100)
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusActive,
				Order:    5,
				Tasks: []models.Task{
					{Status: models.TaskStatusPending, DueDate: &due, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	if got.Score != 100 {
		t.Errorf("score = %d, want 100 (상한)", got.Score)
	}
	if got.Severity != models.RiskSeverityCritical {
		t.Errorf("severity = %q, want critical", got.Severity)
	}
}

func TestAssessProject_Factors(t *testing.T) {
	now := time.Date(2024, 6, 18, 10, 0, 0, 0, utils.KST)
	due := now.AddDate(0, 0, -3)
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusActive,
				Order:    1,
				Tasks: []models.Task{
					{Status: models.TaskStatusPending, DueDate: &due, IsActive: true},
					{Status: models.TaskStatusPending, DueDate: &due, IsActive: true},
					{Status: models.TaskStatusCompleted, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	want := []string{"2개 태스크 마감 초과", "최대 3일 지연", "진행률 33%"}
	if len(got.Factors) != len(want) {
		t.Fatalf("factors = %v, want %v", got.Factors, want)
	}
	for i := range want {
		if got.Factors[i] != want[i] {
			t.Errorf("factors[%d] = %q, want %q", i, got.Factors[i], want[i])
		}
	}
}

func TestAssessProject_FactorsOmittedWhenClean(t *testing.T) {
	now := time.Now()
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Status:   models.StageStatusActive,
				Order:    1,
				Tasks: []models.Task{
					{Status: models.TaskStatusCompleted, IsActive: true},
					{Status: models.TaskStatusPending, IsActive: true},
				},
			},
		},
	}

	got := AssessProject(project, now)
	if got == nil {
		t.Fatal("평가 결과가 nil")
	}
	// 지연 없음, 진행률 50% → 어떤 요인도 없음
	if len(got.Factors) != 0 {
		t.Errorf("factors = %v, want 없음", got.Factors)
	}
}

func TestAssessProject_IgnoresInactiveStages(t *testing.T) {
	now := time.Now()
	due := now.AddDate(0, 0, -30)
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: false,
				Status:   models.StageStatusActive,
				Order:    9,
				Tasks: []models.Task{
					{Status: models.TaskStatusPending, DueDate: &due, IsActive: true},
				},
			},
		},
	}
	if got := AssessProject(project, now); got != nil {
		t.Errorf("비활성 단계만 있으면 평가 없음, got %+v", got)
	}
}

func TestProjectProgress(t *testing.T) {
	project := &models.Project{
		Stages: []models.Stage{
			{
				IsActive: true,
				Tasks: []models.Task{
					{Status: models.TaskStatusCompleted, IsActive: true},
					{Status: models.TaskStatusCompleted, IsActive: true},
					{Status: models.TaskStatusPending, IsActive: true},
				},
			},
		},
	}
	if got := ProjectProgress(project); got != 67 {
		t.Errorf("progress = %d, want 67", got)
	}

	if got := ProjectProgress(&models.Project{}); got != 0 {
		t.Errorf("빈 프로젝트 progress = %d, want 0", got)
	}
}
