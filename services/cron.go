package services

import (
	"context"

	"solarpms/utils"

	rcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronRunner 프로세스 내장 알림 트리거
//
// 외부 크론 없이 단일 인스턴스로 운영할 때 사용한다 (ENABLE_CRON).
// HTTP 크론 엔드포인트가 정식 트리거이며 이 러너는 같은 실행 경로를
// 호출할 뿐이다. Redis 잠금이 있으므로 둘을 같이 켜도 중복 발송은 없다.
type CronRunner struct {
	cron  *rcron.Cron
	sched *Scheduler
	log   *zap.SugaredLogger
}

func NewCronRunner(sched *Scheduler, log *zap.SugaredLogger) *CronRunner {
	return &CronRunner{sched: sched, log: log}
}

// Start KST 기준 매일 9시 daily, 매시 정각 hourly 실행 등록
func (r *CronRunner) Start() error {
	r.cron = rcron.New(rcron.WithLocation(utils.KST))

	if _, err := r.cron.AddFunc("0 9 * * *", func() {
		if _, err := r.sched.RunDaily(context.Background()); err != nil {
			r.log.Errorw("일간 알림 실행 실패", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := r.cron.AddFunc("0 * * * *", func() {
		if _, err := r.sched.RunHourly(context.Background()); err != nil {
			r.log.Errorw("시간당 알림 실행 실패", "error", err)
		}
	}); err != nil {
		return err
	}

	r.cron.Start()
	r.log.Infow("알림 크론 시작", "daily", "0 9 * * * KST", "hourly", "0 * * * * KST")
	return nil
}

// Stop 등록된 작업이 끝날 때까지 기다린 뒤 중지
func (r *CronRunner) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}
