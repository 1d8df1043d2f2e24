package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// Config 모든 설정 정보를 담는 구조체
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// 데이터베이스 설정
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis 설정
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// 텔레그램 알림 설정
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `mapstructure:"TELEGRAM_CHAT_ID"`

	// 푸시 알림 설정 (미설정 시 채널 전체 비활성화)
	PushEndpoint   string `mapstructure:"PUSH_ENDPOINT"`
	PushServiceKey string `mapstructure:"PUSH_SERVICE_KEY"`

	// 알림 스케줄러 설정 (KST 기준)
	QuietHourStart      int  `mapstructure:"QUIET_HOUR_START"`
	QuietHourEnd        int  `mapstructure:"QUIET_HOUR_END"`
	ReminderIntervalMin int  `mapstructure:"REMINDER_INTERVAL_MIN"`
	EnableCron          bool `mapstructure:"ENABLE_CRON"`

	// 위험도 점수 저장 여부 (false면 조회 시마다 재계산)
	PersistRiskScore bool `mapstructure:"PERSIST_RISK_SCORE"`

	// 개발용 기본 회사 시드 여부
	SeedDefaultCompany bool `mapstructure:"SEED_DEFAULT_COMPANY"`

	// JWT 설정
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// LoadConfig 환경 변수 또는 설정 파일에서 설정 로드
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("QUIET_HOUR_START", 20)
	viper.SetDefault("QUIET_HOUR_END", 9)
	viper.SetDefault("REMINDER_INTERVAL_MIN", 60)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// 설정 파일이 없어도 환경 변수에서 읽을 수 있도록 허용
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString 데이터베이스 연결 문자열 반환
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString Redis 연결 문자열 반환
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
