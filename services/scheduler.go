package services

import (
	"context"
	"fmt"
	"time"

	"solarpms/config"
	"solarpms/models"
	"solarpms/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 실행 모드
const (
	RunModeDaily  = "daily"
	RunModeHourly = "hourly"
)

// 실행 건너뜀 사유
const (
	SkipReasonQuietHours     = "quiet_hours"
	SkipReasonAlreadyRunning = "already_running"
)

// TaskStore 알림 후보 조회와 발송 기록 저장소
type TaskStore interface {
	DueCandidates(ctx context.Context) ([]models.Task, error)
	MarkNotified(ctx context.Context, taskID string, at time.Time) error
}

// Messenger 텔레그램 등 텍스트 메시지 발송 채널
type Messenger interface {
	SendText(text string) error
}

// Pusher 푸시 채널 (실패해도 무시하는 보조 채널)
type Pusher interface {
	Notify(ctx context.Context, task models.Task)
}

// Locker 스케줄러 중복 실행 방지 잠금
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string)
}

// Scheduler 마감일 기반 알림 스케줄러
//
// daily 모드는 KST 달력 기준 마감 7일 전/1일 전 태스크를,
// hourly 모드는 오늘 마감이거나 이미 지난 태스크를 대상으로 한다.
// 같은 트리거가 동시에 두 번 돌지 않도록 Redis 잠금을 잡는다.
type Scheduler struct {
	Store              TaskStore
	Messenger          Messenger
	Pusher             Pusher
	Locker             Locker
	QuietHourStart     int
	QuietHourEnd       int
	DefaultIntervalMin int
	Now                func() time.Time
	Log                *zap.SugaredLogger
}

// NewScheduler 설정과 의존성으로 스케줄러 구성
// 텔레그램 설정이 없으면 Messenger는 nil로 남고 실행 시점에 오류가 된다.
func NewScheduler(conf config.Config, db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Scheduler {
	s := &Scheduler{
		Store:              &GormTaskStore{DB: db},
		Locker:             &RedisLocker{Client: rdb},
		QuietHourStart:     conf.QuietHourStart,
		QuietHourEnd:       conf.QuietHourEnd,
		DefaultIntervalMin: conf.ReminderIntervalMin,
		Now:                time.Now,
		Log:                log,
	}

	if conf.TelegramBotToken != "" && conf.TelegramChatID != 0 {
		messenger, err := NewTelegramMessenger(conf.TelegramBotToken, conf.TelegramChatID)
		if err != nil {
			log.Errorw("텔레그램 봇 초기화 실패", "error", err)
		} else {
			s.Messenger = messenger
		}
	}

	if pusher := NewPushService(conf, db, log); pusher != nil {
		s.Pusher = pusher
	}

	return s
}

// RunDaily 일간 알림 실행: 마감 7일 전/1일 전 태스크에 1회 발송
// 같은 KST 날짜에 이미 알린 태스크는 건너뛴다 (하루 최대 1회).
func (s *Scheduler) RunDaily(ctx context.Context) (*models.NotificationRunResponse, error) {
	if s.Messenger == nil {
		return nil, fmt.Errorf("텔레그램 봇 설정이 없습니다")
	}

	resp := &models.NotificationRunResponse{Mode: RunModeDaily}

	if ok := s.acquire(ctx, "notify:lock:daily"); !ok {
		resp.Reason = SkipReasonAlreadyRunning
		return resp, nil
	}
	defer s.release(ctx, "notify:lock:daily")

	now := s.Now()
	tasks, err := s.Store.DueCandidates(ctx)
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		diff := utils.DiffDaysKST(now, *task.DueDate)
		if diff != 7 && diff != 1 {
			continue
		}
		if task.LastNotifiedAt != nil && utils.SameDayKST(*task.LastNotifiedAt, now) {
			resp.Skipped++
			continue
		}
		s.dispatch(ctx, task, diff, now, resp)
	}

	s.logRun(resp)
	return resp, nil
}

// RunHourly 시간당 알림 실행: 오늘 마감이거나 마감이 지난 태스크 대상
// 방해 금지 시간대에는 실행 자체를 건너뛰고, 태스크별 재발송 간격을 지킨다.
func (s *Scheduler) RunHourly(ctx context.Context) (*models.NotificationRunResponse, error) {
	if s.Messenger == nil {
		return nil, fmt.Errorf("텔레그램 봇 설정이 없습니다")
	}

	resp := &models.NotificationRunResponse{Mode: RunModeHourly}

	now := s.Now()
	if utils.InQuietHoursKST(now, s.QuietHourStart, s.QuietHourEnd) {
		resp.Reason = SkipReasonQuietHours
		return resp, nil
	}

	if ok := s.acquire(ctx, "notify:lock:hourly"); !ok {
		resp.Reason = SkipReasonAlreadyRunning
		return resp, nil
	}
	defer s.release(ctx, "notify:lock:hourly")

	tasks, err := s.Store.DueCandidates(ctx)
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		diff := utils.DiffDaysKST(now, *task.DueDate)
		if diff > 0 {
			continue
		}
		interval := task.ReminderIntervalMin
		if interval <= 0 {
			interval = s.DefaultIntervalMin
		}
		if task.LastNotifiedAt != nil && now.Sub(*task.LastNotifiedAt) < time.Duration(interval)*time.Minute {
			resp.Skipped++
			continue
		}
		s.dispatch(ctx, task, diff, now, resp)
	}

	s.logRun(resp)
	return resp, nil
}

// dispatch 개별 태스크 발송: 실패해도 기록만 하고 나머지 처리를 계속한다
func (s *Scheduler) dispatch(ctx context.Context, task models.Task, diffDays int, now time.Time, resp *models.NotificationRunResponse) {
	if err := s.Messenger.SendText(reminderText(task, diffDays)); err != nil {
		resp.Failures = append(resp.Failures, models.SendFailure{TaskID: task.ID, Error: err.Error()})
		return
	}

	if err := s.Store.MarkNotified(ctx, task.ID, now); err != nil {
		resp.Failures = append(resp.Failures, models.SendFailure{TaskID: task.ID, Error: err.Error()})
		return
	}
	resp.Sent++

	if s.Pusher != nil {
		s.Pusher.Notify(ctx, task)
	}
}

func (s *Scheduler) acquire(ctx context.Context, key string) bool {
	if s.Locker == nil {
		return true
	}
	ok, err := s.Locker.Acquire(ctx, key, 5*time.Minute)
	if err != nil {
		// 잠금 장애 시 단일 트리거 가정으로 진행
		if s.Log != nil {
			s.Log.Warnw("스케줄러 잠금 획득 실패", "key", key, "error", err)
		}
		return true
	}
	return ok
}

func (s *Scheduler) release(ctx context.Context, key string) {
	if s.Locker != nil {
		s.Locker.Release(ctx, key)
	}
}

func (s *Scheduler) logRun(resp *models.NotificationRunResponse) {
	if s.Log == nil {
		return
	}
	s.Log.Infow("알림 실행 완료",
		"mode", resp.Mode,
		"sent", resp.Sent,
		"skipped", resp.Skipped,
		"failures", len(resp.Failures),
	)
}

// reminderText 알림 메시지 본문 (HTML)
func reminderText(task models.Task, diffDays int) string {
	due := task.DueDate.In(utils.KST).Format("2006-01-02")
	switch {
	case diffDays > 0:
		return fmt.Sprintf("⏰ <b>마감 D-%d</b>\n%s\n마감일: %s", diffDays, task.Title, due)
	case diffDays == 0:
		return fmt.Sprintf("🔔 <b>오늘 마감</b>\n%s\n마감일: %s", task.Title, due)
	default:
		return fmt.Sprintf("🚨 <b>마감 초과 D+%d</b>\n%s\n마감일: %s", -diffDays, task.Title, due)
	}
}

// GormTaskStore gorm 기반 TaskStore 구현
type GormTaskStore struct {
	DB *gorm.DB
}

// DueCandidates 알림 후보 태스크 조회
// 알림 활성화, 미완료, 마감일 존재, 활성 태스크만 해당한다.
// soft delete 필터는 gorm이 항상 적용한다.
func (s *GormTaskStore) DueCandidates(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.WithContext(ctx).
		Where("notification_enabled = ? AND status <> ? AND due_date IS NOT NULL AND is_active = ?",
			true, models.TaskStatusCompleted, true).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

// MarkNotified 발송 시각 기록 (이 컴포넌트가 변경하는 유일한 영속 상태)
func (s *GormTaskStore) MarkNotified(ctx context.Context, taskID string, at time.Time) error {
	return s.DB.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("last_notified_at", at).Error
}

// RedisLocker Redis SETNX 기반 Locker 구현
type RedisLocker struct {
	Client *redis.Client
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.Client.SetNX(ctx, key, 1, ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key string) {
	l.Client.Del(ctx, key)
}
