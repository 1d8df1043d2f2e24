package controllers

import "solarpms/models"

// reorderIDs 순서 변경 요청에서 중복을 제거한 ID 목록 추출
// 존재 검증 시 개수 비교에 쓰이므로 중복이 있으면 안 된다.
func reorderIDs(entries []models.ReorderEntry) []string {
	seen := map[string]bool{}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		ids = append(ids, e.ID)
	}
	return ids
}
