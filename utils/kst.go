package utils

import (
	"fmt"
	"time"
)

// KST 한국 표준시 (UTC+9)
var KST = time.FixedZone("KST", 9*60*60)

// StartOfDayKST KST 기준 해당 일자의 0시 반환
func StartOfDayKST(t time.Time) time.Time {
	k := t.In(KST)
	return time.Date(k.Year(), k.Month(), k.Day(), 0, 0, 0, 0, KST)
}

// DiffDaysKST KST 달력 기준 일수 차이 반환 (to - from)
// UTC 시각 차이가 아니라 일 경계 기준으로 계산해야
// UTC 15시~24시 구간에서 하루씩 밀리는 문제가 없다.
func DiffDaysKST(from, to time.Time) int {
	a := StartOfDayKST(from)
	b := StartOfDayKST(to)
	return int(b.Sub(a).Hours() / 24)
}

// SameDayKST 두 시각이 KST 기준 같은 날인지 여부
func SameDayKST(a, b time.Time) bool {
	return StartOfDayKST(a).Equal(StartOfDayKST(b))
}

// InQuietHoursKST KST 기준 방해 금지 시간대 여부
// start > end 이면 자정을 넘기는 구간으로 해석한다 (예: 20시~익일 9시).
func InQuietHoursKST(t time.Time, start, end int) bool {
	h := t.In(KST).Hour()
	if start == end {
		return false
	}
	if start < end {
		return h >= start && h < end
	}
	return h >= start || h < end
}

// ParseDateField YYYY-MM-DD 문자열을 KST 0시로 파싱
// 실패 시 필드명을 포함한 오류를 반환하고 값을 보정하지 않는다.
func ParseDateField(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, KST)
	if err != nil {
		return time.Time{}, fmt.Errorf("잘못된 날짜 형식: %s", field)
	}
	return t, nil
}
