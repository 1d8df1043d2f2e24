package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solarpms/config"
	"solarpms/middleware"
	"solarpms/models"
	"solarpms/routes"
	"solarpms/services"
	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 로그 초기화
	if err := config.InitLogger(); err != nil {
		log.Fatalf("로그 초기화 실패: %v", err)
	}
	defer config.Logger.Sync()

	// 설정 로드
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
		return
	}

	utils.InitJWT(conf.JWTSecret)

	// 데이터베이스 초기화
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("데이터베이스 초기화 실패: %v", err)
		return
	}

	// Redis 초기화
	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("Redis 초기화 실패: %v", err)
		return
	}

	// 개발 모드: 기본 회사/사용자 시드
	if conf.SeedDefaultCompany {
		if err := seedDefaultCompany(); err != nil {
			log.Fatalf("기본 회사 시드 실패: %v", err)
		}
	}

	// 알림 스케줄러 구성
	scheduler := services.NewScheduler(conf, config.DB, config.RedisClient, config.Logger)

	// 프로세스 내장 크론 (옵션)
	var cronRunner *services.CronRunner
	if conf.EnableCron {
		cronRunner = services.NewCronRunner(scheduler, config.Logger)
		if err := cronRunner.Start(); err != nil {
			log.Fatalf("크론 시작 실패: %v", err)
		}
	}

	// Gin 모드 설정
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 미들웨어 설정
	middleware.SetupMiddleware(r)

	// 라우트 등록
	routes.RegisterRoutes(r, conf, scheduler)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 고루틴에서 서버 시작
	go func() {
		log.Printf("서버 시작, 포트: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("서버 시작 실패: %v", err)
		}
	}()

	// 인터럽트 신호 대기 후 우아한 종료
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("서버 종료 중...")

	if cronRunner != nil {
		cronRunner.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("서버 종료 실패: %v", err)
	}

	log.Println("서버가 종료되었습니다")
}

// seedDefaultCompany 개발 환경용 기본 회사/사용자 생성
// 운영 환경에서는 SEED_DEFAULT_COMPANY를 끄고 명시적으로 테넌트를 만든다.
func seedDefaultCompany() error {
	var count int64
	if err := config.DB.Model(&models.Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	company := models.Company{
		ID:   utils.GenerateID(),
		Name: "기본 회사",
	}
	if err := config.DB.Create(&company).Error; err != nil {
		return err
	}

	user := models.User{
		ID:        utils.GenerateID(),
		Name:      "관리자",
		Email:     "admin@example.com",
		CompanyID: company.ID,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return err
	}

	config.Logger.Infow("기본 회사 시드 완료", "companyId", company.ID, "userId", user.ID)
	return nil
}
