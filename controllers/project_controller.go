package controllers

import (
	"net/http"
	"time"

	"solarpms/config"
	"solarpms/models"
	"solarpms/services"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectController struct{}

// 단계/태스크를 정렬 순서대로 함께 읽는 공통 프리로드
func withStagesAndTasks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Stages.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

func projectResponse(p *models.Project, withStages bool) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:         p.ID,
		Name:       p.Name,
		Status:     p.Status,
		CapacityKW: p.CapacityKW,
		Address:    p.Address,
		Progress:   services.ProjectProgress(p),
		Risk:       services.AssessProject(p, time.Now()),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if withStages {
		resp.Stages = p.Stages
	}
	return resp
}

// ListProjects 회사 프로젝트 목록 조회
func (pc *ProjectController) ListProjects(c *gin.Context) {
	companyID := c.GetString("companyId")

	var projects []models.Project
	if err := withStagesAndTasks(config.DB).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		config.Logger.Errorw("프로젝트 목록 조회 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 목록 조회 실패"})
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = projectResponse(&projects[i], false)
	}
	c.JSON(http.StatusOK, responses)
}

// CreateProject 프로젝트 생성
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}
	if !models.IsValidProjectStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 상태"})
		return
	}

	project := models.Project{
		ID:         utils.GenerateID(),
		CompanyID:  c.GetString("companyId"),
		Name:       req.Name,
		Status:     status,
		CapacityKW: req.CapacityKW,
		Address:    req.Address,
	}
	if err := config.DB.Create(&project).Error; err != nil {
		config.Logger.Errorw("프로젝트 생성 실패", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 생성 실패"})
		return
	}

	c.JSON(http.StatusOK, projectResponse(&project, false))
}

// GetProject 프로젝트 상세 조회 (단계/태스크, 진행률, 위험도 포함)
func (pc *ProjectController) GetProject(c *gin.Context) {
	project, ok := pc.loadProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, projectResponse(project, true))
}

// UpdateProject 프로젝트 수정
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	project, ok := pc.loadProject(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Status != nil {
		if !models.IsValidProjectStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 상태"})
			return
		}
		updates["status"] = *req.Status
	}
	if req.CapacityKW != nil {
		updates["capacity_kw"] = *req.CapacityKW
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) > 0 {
		if err := config.DB.Model(project).Updates(updates).Error; err != nil {
			config.Logger.Errorw("프로젝트 수정 실패", "error", err, "projectId", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 수정 실패"})
			return
		}
	}

	c.JSON(http.StatusOK, projectResponse(project, false))
}

// DeleteProject 프로젝트와 하위 단계/태스크/예산 soft delete
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	project, ok := pc.loadProject(c)
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var stageIDs []string
	if err := tx.Model(&models.Stage{}).Where("project_id = ?", project.ID).
		Pluck("id", &stageIDs).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 삭제 실패"})
		return
	}

	if len(stageIDs) > 0 {
		if err := tx.Where("stage_id IN ?", stageIDs).Delete(&models.Task{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 삭제 실패"})
			return
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Stage{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 삭제 실패"})
			return
		}
	}
	if err := tx.Where("project_id = ?", project.ID).Delete(&models.BudgetItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 삭제 실패"})
		return
	}
	if err := tx.Delete(project).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 삭제 실패"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 삭제 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}

// InstantiateProject 체크리스트 템플릿으로 단계/태스크 일괄 생성
// 전체가 한 트랜잭션이다. 같은 이름의 단계는 재사용하고 같은 제목의
// 태스크는 건너뛰므로 두 번 호출해도 중복 생성되지 않는다.
func (pc *ProjectController) InstantiateProject(c *gin.Context) {
	project, ok := pc.loadProject(c)
	if !ok {
		return
	}

	var req models.InstantiateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var template models.ChecklistTemplate
	if err := config.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC, sort_order ASC")
	}).Where("id = ? AND company_id = ?", req.TemplateID, project.CompanyID).
		First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "템플릿을 찾을 수 없습니다"})
		return
	}
	if len(template.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "템플릿에 항목이 없습니다"})
		return
	}

	baseDate := utils.StartOfDayKST(time.Now())
	if req.BaseDate != nil {
		parsed, err := utils.ParseDateField("baseDate", *req.BaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		baseDate = parsed
	}

	// 기존 단계/태스크와 비교해 새로 만들 것만 계획한다
	plans := services.PlanInstantiation(project.ID, template.Items, project.Stages, baseDate)

	if len(plans) > 0 {
		tx := config.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		for i := range plans {
			if plans[i].IsNew {
				if err := tx.Create(&plans[i].Stage).Error; err != nil {
					tx.Rollback()
					c.JSON(http.StatusInternalServerError, gin.H{"error": "단계 생성 실패"})
					return
				}
			}
			if err := tx.CreateInBatches(plans[i].NewTasks, 100).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "태스크 생성 실패"})
				return
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "템플릿 적용 실패"})
			return
		}

		// 기존 단계에 태스크가 추가되면 단계 상태가 달라질 수 있다
		for i := range plans {
			if plans[i].IsNew {
				continue
			}
			if err := services.RecalcStageStatus(config.DB, plans[i].Stage.ID); err != nil {
				config.Logger.Errorw("단계 상태 재계산 실패", "error", err, "stageId", plans[i].Stage.ID)
			}
		}
	}

	config.Logger.Infow("템플릿 적용 완료",
		"projectId", project.ID,
		"templateId", template.ID,
		"stages", len(plans),
	)

	var created models.Project
	if err := withStagesAndTasks(config.DB).Where("id = ?", project.ID).First(&created).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로젝트 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, projectResponse(&created, true))
}

// loadProject 회사 범위 내 프로젝트 조회, 없으면 404 응답까지 처리
func (pc *ProjectController) loadProject(c *gin.Context) (*models.Project, bool) {
	var project models.Project
	err := withStagesAndTasks(config.DB).
		Where("id = ? AND company_id = ?", c.Param("id"), c.GetString("companyId")).
		First(&project).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "프로젝트를 찾을 수 없습니다"})
		return nil, false
	}
	return &project, true
}
