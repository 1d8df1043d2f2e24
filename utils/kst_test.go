package utils

import (
	"testing"
	"time"
)

func TestDiffDaysKST(t *testing.T) {
	due := time.Date(2024, 6, 15, 0, 0, 0, 0, KST)
	today := time.Date(2024, 6, 8, 0, 0, 0, 0, KST)

	if got := DiffDaysKST(today, due); got != 7 {
		t.Errorf("DiffDaysKST = %d, want 7", got)
	}
}

func TestDiffDaysKST_UTCBoundary(t *testing.T) {
	// UTC 기준으로는 아직 전날이지만 KST로는 이미 다음 날인 구간.
	// 단순 UTC 시각 차이로 계산하면 하루가 밀린다.
	now := time.Date(2024, 6, 7, 16, 30, 0, 0, time.UTC) // KST 6/8 01:30
	due := time.Date(2024, 6, 15, 0, 0, 0, 0, KST)

	if got := DiffDaysKST(now, due); got != 7 {
		t.Errorf("DiffDaysKST = %d, want 7", got)
	}
}

func TestDiffDaysKST_Past(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, KST)
	due := time.Date(2024, 6, 8, 23, 59, 0, 0, KST)

	if got := DiffDaysKST(now, due); got != -2 {
		t.Errorf("DiffDaysKST = %d, want -2", got)
	}
}

func TestSameDayKST(t *testing.T) {
	a := time.Date(2024, 6, 7, 15, 30, 0, 0, time.UTC) // KST 6/8 00:30
	b := time.Date(2024, 6, 8, 20, 0, 0, 0, KST)

	if !SameDayKST(a, b) {
		t.Error("KST 기준 같은 날이어야 함")
	}

	c := time.Date(2024, 6, 7, 14, 30, 0, 0, time.UTC) // KST 6/7 23:30
	if SameDayKST(a, c) {
		t.Error("KST 기준 다른 날이어야 함")
	}
}

func TestInQuietHoursKST(t *testing.T) {
	cases := []struct {
		hour int
		want bool
	}{
		{21, true}, // 심야 구간
		{23, true},
		{0, true},
		{8, true},
		{9, false}, // 종료 시각은 제외
		{12, false},
		{19, false},
		{20, true}, // 시작 시각부터 포함
	}
	for _, tc := range cases {
		at := time.Date(2024, 6, 8, tc.hour, 30, 0, 0, KST)
		if got := InQuietHoursKST(at, 20, 9); got != tc.want {
			t.Errorf("InQuietHoursKST(%d시) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestInQuietHoursKST_SameStartEnd(t *testing.T) {
	at := time.Date(2024, 6, 8, 10, 0, 0, 0, KST)
	if InQuietHoursKST(at, 9, 9) {
		t.Error("시작과 끝이 같으면 방해 금지 없음")
	}
}

func TestParseDateField(t *testing.T) {
	got, err := ParseDateField("dueDate", "2024-06-15")
	if err != nil {
		t.Fatalf("ParseDateField error: %v", err)
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, KST)
	if !got.Equal(want) {
		t.Errorf("ParseDateField = %v, want %v", got, want)
	}

	if _, err := ParseDateField("startDate", "15/06/2024"); err == nil {
		t.Error("잘못된 형식이면 오류여야 함")
	}
}
