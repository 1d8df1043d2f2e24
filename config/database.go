package config

import (
	"fmt"
	"time"

	"solarpms/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 데이터베이스 연결 초기화
func InitDB(config Config) error {
	dsn := config.GetDBConnString()

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// 커넥션 풀 설정
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrateDB(); err != nil {
		return fmt.Errorf("데이터베이스 마이그레이션 실패: %v", err)
	}

	return nil
}

// migrateDB 테이블 구조 자동 마이그레이션
func migrateDB() error {
	err := DB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Project{},
		&models.Stage{},
		&models.Task{},
		&models.ChecklistTemplate{},
		&models.ChecklistTemplateItem{},
		&models.BudgetItem{},
		&models.Vendor{},
		&models.PushToken{},
	)
	if err != nil {
		return fmt.Errorf("데이터베이스 마이그레이션 실패: %v", err)
	}

	return nil
}
