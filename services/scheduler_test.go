package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"solarpms/models"
	"solarpms/utils"
)

type fakeStore struct {
	tasks    []models.Task
	marked   map[string]time.Time
	failMark bool
	queried  int
}

func (s *fakeStore) DueCandidates(ctx context.Context) ([]models.Task, error) {
	s.queried++
	return s.tasks, nil
}

func (s *fakeStore) MarkNotified(ctx context.Context, taskID string, at time.Time) error {
	if s.failMark {
		return fmt.Errorf("update failed")
	}
	if s.marked == nil {
		s.marked = map[string]time.Time{}
	}
	s.marked[taskID] = at
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			t := at
			s.tasks[i].LastNotifiedAt = &t
		}
	}
	return nil
}

type fakeMessenger struct {
	sent   []string
	failOn string // 본문에 이 문자열이 포함되면 실패
}

func (m *fakeMessenger) SendText(text string) error {
	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return fmt.Errorf("send failed")
	}
	m.sent = append(m.sent, text)
	return nil
}

type fakeLocker struct {
	denied   bool
	acquired []string
	released []string
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.acquired = append(l.acquired, key)
	return !l.denied, nil
}

func (l *fakeLocker) Release(ctx context.Context, key string) {
	l.released = append(l.released, key)
}

type fakePusher struct {
	notified []string
}

func (p *fakePusher) Notify(ctx context.Context, task models.Task) {
	p.notified = append(p.notified, task.ID)
}

func kstDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, utils.KST)
	return &t
}

func newTestScheduler(store *fakeStore, messenger *fakeMessenger, now time.Time) *Scheduler {
	return &Scheduler{
		Store:              store,
		Messenger:          messenger,
		QuietHourStart:     20,
		QuietHourEnd:       9,
		DefaultIntervalMin: 60,
		Now:                func() time.Time { return now },
	}
}

func TestRunDaily_SelectsSevenAndOneDayWindows(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "t7", Title: "구조물 설치", DueDate: kstDate(2024, 6, 15)},
		{ID: "t1", Title: "사용 전 검사", DueDate: kstDate(2024, 6, 9)},
		{ID: "t3", Title: "계통 연계", DueDate: kstDate(2024, 6, 11)},
	}}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunDaily(context.Background())
	if err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if resp.Sent != 2 {
		t.Errorf("sent = %d, want 2", resp.Sent)
	}
	if _, ok := store.marked["t7"]; !ok {
		t.Error("t7의 lastNotifiedAt이 기록되어야 함")
	}
	if _, ok := store.marked["t1"]; !ok {
		t.Error("t1의 lastNotifiedAt이 기록되어야 함")
	}
	if _, ok := store.marked["t3"]; ok {
		t.Error("t3은 발송 대상이 아님")
	}
}

func TestRunDaily_IdempotentPerKSTDay(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "t7", Title: "구조물 설치", DueDate: kstDate(2024, 6, 15)},
	}}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	first, err := s.RunDaily(context.Background())
	if err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if first.Sent != 1 {
		t.Fatalf("첫 실행 sent = %d, want 1", first.Sent)
	}

	// 같은 KST 날짜에 재실행하면 건너뛴다
	s.Now = func() time.Time { return now.Add(2 * time.Hour) }
	second, err := s.RunDaily(context.Background())
	if err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if second.Sent != 0 {
		t.Errorf("재실행 sent = %d, want 0", second.Sent)
	}
	if second.Skipped != 1 {
		t.Errorf("재실행 skipped = %d, want 1", second.Skipped)
	}
}

func TestRunDaily_MissingMessengerAborts(t *testing.T) {
	store := &fakeStore{tasks: []models.Task{
		{ID: "t7", DueDate: kstDate(2024, 6, 15)},
	}}
	s := newTestScheduler(store, nil, time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST))
	s.Messenger = nil

	if _, err := s.RunDaily(context.Background()); err == nil {
		t.Fatal("설정 없는 실행은 오류여야 함")
	}
	if store.queried != 0 {
		t.Error("선행 조건 실패 시 후보 조회도 하지 않아야 함")
	}
}

func TestRunHourly_QuietHoursSkipsWholeRun(t *testing.T) {
	now := time.Date(2024, 6, 8, 21, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "overdue", DueDate: kstDate(2024, 6, 1)},
	}}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunHourly(context.Background())
	if err != nil {
		t.Fatalf("RunHourly error: %v", err)
	}
	if resp.Reason != SkipReasonQuietHours {
		t.Errorf("reason = %q, want %q", resp.Reason, SkipReasonQuietHours)
	}
	if resp.Sent != 0 || resp.Skipped != 0 {
		t.Errorf("sent/skipped = %d/%d, want 0/0", resp.Sent, resp.Skipped)
	}
	if store.queried != 0 {
		t.Error("방해 금지 시간에는 후보 조회도 하지 않아야 함")
	}
}

func TestRunHourly_TargetsDueTodayOrPast(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "past", Title: "인허가 접수", DueDate: kstDate(2024, 6, 6)},
		{ID: "today", Title: "현장 점검", DueDate: kstDate(2024, 6, 8)},
		{ID: "future", Title: "준공 검사", DueDate: kstDate(2024, 6, 9)},
	}}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunHourly(context.Background())
	if err != nil {
		t.Fatalf("RunHourly error: %v", err)
	}
	if resp.Sent != 2 {
		t.Errorf("sent = %d, want 2", resp.Sent)
	}
	if _, ok := store.marked["future"]; ok {
		t.Error("미래 마감 태스크는 hourly 대상이 아님")
	}
}

func TestRunHourly_ThrottlesByReminderInterval(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	recent := now.Add(-30 * time.Minute)
	stale := now.Add(-90 * time.Minute)
	store := &fakeStore{tasks: []models.Task{
		{ID: "recent", DueDate: kstDate(2024, 6, 8), LastNotifiedAt: &recent, ReminderIntervalMin: 60},
		{ID: "stale", DueDate: kstDate(2024, 6, 8), LastNotifiedAt: &stale, ReminderIntervalMin: 60},
	}}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunHourly(context.Background())
	if err != nil {
		t.Fatalf("RunHourly error: %v", err)
	}
	if resp.Sent != 1 {
		t.Errorf("sent = %d, want 1", resp.Sent)
	}
	if resp.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", resp.Skipped)
	}
	if _, ok := store.marked["recent"]; ok {
		t.Error("간격이 지나지 않은 태스크는 재발송하지 않음")
	}
}

func TestRunHourly_DefaultIntervalWhenUnset(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	recent := now.Add(-30 * time.Minute)
	store := &fakeStore{tasks: []models.Task{
		{ID: "t", DueDate: kstDate(2024, 6, 8), LastNotifiedAt: &recent, ReminderIntervalMin: 0},
	}}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunHourly(context.Background())
	if err != nil {
		t.Fatalf("RunHourly error: %v", err)
	}
	if resp.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (기본 간격 60분 적용)", resp.Skipped)
	}
}

func TestDispatch_FailureIsolatedPerTask(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "bad", Title: "실패하는 태스크", DueDate: kstDate(2024, 6, 8)},
		{ID: "good", Title: "정상 태스크", DueDate: kstDate(2024, 6, 8)},
	}}
	messenger := &fakeMessenger{failOn: "실패하는"}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunHourly(context.Background())
	if err != nil {
		t.Fatalf("RunHourly error: %v", err)
	}
	if len(resp.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(resp.Failures))
	}
	if resp.Failures[0].TaskID != "bad" {
		t.Errorf("failure taskId = %q, want bad", resp.Failures[0].TaskID)
	}
	if resp.Sent != 1 {
		t.Errorf("sent = %d, want 1 (실패해도 나머지는 계속)", resp.Sent)
	}
	if _, ok := store.marked["bad"]; ok {
		t.Error("발송 실패 태스크는 lastNotifiedAt을 기록하지 않음")
	}
}

func TestDispatch_MarkFailureRecorded(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{
		tasks:    []models.Task{{ID: "t", DueDate: kstDate(2024, 6, 8)}},
		failMark: true,
	}
	messenger := &fakeMessenger{}
	s := newTestScheduler(store, messenger, now)

	resp, err := s.RunHourly(context.Background())
	if err != nil {
		t.Fatalf("RunHourly error: %v", err)
	}
	if resp.Sent != 0 {
		t.Errorf("sent = %d, want 0", resp.Sent)
	}
	if len(resp.Failures) != 1 {
		t.Errorf("failures = %d, want 1", len(resp.Failures))
	}
}

func TestRun_LockDeniedSkips(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "t", DueDate: kstDate(2024, 6, 15)},
	}}
	s := newTestScheduler(store, &fakeMessenger{}, now)
	s.Locker = &fakeLocker{denied: true}

	resp, err := s.RunDaily(context.Background())
	if err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if resp.Reason != SkipReasonAlreadyRunning {
		t.Errorf("reason = %q, want %q", resp.Reason, SkipReasonAlreadyRunning)
	}
	if store.queried != 0 {
		t.Error("잠금 실패 시 후보 조회도 하지 않아야 함")
	}
}

func TestRun_LockReleasedAfterRun(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	locker := &fakeLocker{}
	s := newTestScheduler(&fakeStore{}, &fakeMessenger{}, now)
	s.Locker = locker

	if _, err := s.RunDaily(context.Background()); err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if len(locker.released) != 1 {
		t.Errorf("released = %d, want 1", len(locker.released))
	}
}

func TestDispatch_PusherNotifiedOnSuccess(t *testing.T) {
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, utils.KST)
	store := &fakeStore{tasks: []models.Task{
		{ID: "t7", DueDate: kstDate(2024, 6, 15)},
	}}
	pusher := &fakePusher{}
	s := newTestScheduler(store, &fakeMessenger{}, now)
	s.Pusher = pusher

	if _, err := s.RunDaily(context.Background()); err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if len(pusher.notified) != 1 || pusher.notified[0] != "t7" {
		t.Errorf("pusher.notified = %v, want [t7]", pusher.notified)
	}
}

func TestReminderText(t *testing.T) {
	due := kstDate(2024, 6, 15)
	task := models.Task{Title: "한전 계약", DueDate: due}

	if got := reminderText(task, 7); !strings.Contains(got, "D-7") || !strings.Contains(got, "2024-06-15") {
		t.Errorf("D-7 본문이 아님: %q", got)
	}
	if got := reminderText(task, 0); !strings.Contains(got, "오늘 마감") {
		t.Errorf("오늘 마감 본문이 아님: %q", got)
	}
	if got := reminderText(task, -3); !strings.Contains(got, "D+3") {
		t.Errorf("D+3 본문이 아님: %q", got)
	}
}
