package models

// CreateProjectRequest 프로젝트 생성 요청 구조체
type CreateProjectRequest struct {
	Name       string  `json:"name" binding:"required"`
	Status     string  `json:"status"`
	CapacityKW float64 `json:"capacityKw"`
	Address    string  `json:"address"`
}

// UpdateProjectRequest 프로젝트 수정 요청 구조체
type UpdateProjectRequest struct {
	Name       *string  `json:"name"`
	Status     *string  `json:"status"`
	CapacityKW *float64 `json:"capacityKw"`
	Address    *string  `json:"address"`
}

// InstantiateProjectRequest 템플릿 기반 단계/태스크 생성 요청
type InstantiateProjectRequest struct {
	TemplateID string  `json:"templateId" binding:"required"`
	BaseDate   *string `json:"baseDate"` // YYYY-MM-DD, 마감일 오프셋 기준일 (기본: 오늘)
}

// CreateTaskRequest 태스크 생성 요청 구조체
type CreateTaskRequest struct {
	Title               string  `json:"title" binding:"required"`
	Status              string  `json:"status"`
	DueDate             *string `json:"dueDate"` // YYYY-MM-DD
	IsMandatory         bool    `json:"isMandatory"`
	AssigneeID          *string `json:"assigneeId"`
	NotificationEnabled *bool   `json:"notificationEnabled"`
	Order               int     `json:"order"`
}

// UpdateTaskRequest 태스크 수정 요청 구조체
type UpdateTaskRequest struct {
	Title               *string `json:"title"`
	DueDate             *string `json:"dueDate"`
	IsMandatory         *bool   `json:"isMandatory"`
	IsActive            *bool   `json:"isActive"`
	AssigneeID          *string `json:"assigneeId"`
	NotificationEnabled *bool   `json:"notificationEnabled"`
	ReminderIntervalMin *int    `json:"reminderIntervalMin"`
	Order               *int    `json:"order"`
}

// UpdateTaskStatusRequest 태스크 상태 변경 요청 구조체
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStageRequest 단계 수정 요청 구조체
type UpdateStageRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

// UpdateStageActiveRequest 단계 활성화 토글 요청 구조체
type UpdateStageActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateStageDatesRequest 단계 일자 수정 요청 구조체 (YYYY-MM-DD)
type UpdateStageDatesRequest struct {
	StartDate     *string `json:"startDate"`
	ReceivedDate  *string `json:"receivedDate"`
	CompletedDate *string `json:"completedDate"`
}

// ChecklistTemplateRequest 체크리스트 템플릿 생성/수정 요청
type ChecklistTemplateRequest struct {
	Name  string                         `json:"name" binding:"required"`
	Items []ChecklistTemplateItemRequest `json:"items"`
}

// ChecklistTemplateItemRequest 템플릿 항목 요청
type ChecklistTemplateItemRequest struct {
	StageName            string `json:"stageName" binding:"required"`
	StageOrder           int    `json:"stageOrder"`
	Title                string `json:"title" binding:"required"`
	Order                int    `json:"order"`
	IsMandatory          bool   `json:"isMandatory"`
	DefaultDueOffsetDays *int   `json:"defaultDueOffsetDays"`
}

// ReorderRequest 정렬 순서 일괄 변경 요청 (전체 적용 또는 전체 실패)
type ReorderRequest struct {
	Orders []ReorderEntry `json:"orders" binding:"required"`
}

// ReorderEntry 정렬 항목
type ReorderEntry struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order"`
}

// CreateBudgetItemRequest 예산 항목 생성 요청
type CreateBudgetItemRequest struct {
	Category      string  `json:"category" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	PlannedAmount int64   `json:"plannedAmount"`
	ActualAmount  int64   `json:"actualAmount"`
	VendorID      *string `json:"vendorId"`
	Order         int     `json:"order"`
}

// UpdateBudgetItemRequest 예산 항목 수정 요청
type UpdateBudgetItemRequest struct {
	Category      *string `json:"category"`
	Name          *string `json:"name"`
	PlannedAmount *int64  `json:"plannedAmount"`
	ActualAmount  *int64  `json:"actualAmount"`
	VendorID      *string `json:"vendorId"`
}

// VendorRequest 협력업체 생성/수정 요청
type VendorRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Contact  string `json:"contact"`
	Memo     string `json:"memo"`
}

// RegisterPushTokenRequest 푸시 토큰 등록 요청
type RegisterPushTokenRequest struct {
	DeviceToken string `json:"deviceToken" binding:"required"`
	Platform    string `json:"platform" binding:"required"`
}

// DevLoginRequest 개발용 로그인 요청
type DevLoginRequest struct {
	Email string `json:"email" binding:"required"`
}
