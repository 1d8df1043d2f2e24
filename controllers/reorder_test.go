package controllers

import (
	"testing"

	"solarpms/models"
)

func TestReorderIDs(t *testing.T) {
	entries := []models.ReorderEntry{
		{ID: "a", Order: 1},
		{ID: "b", Order: 2},
		{ID: "a", Order: 3}, // 중복은 한 번만
	}

	ids := reorderIDs(entries)
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}
	if ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ids = %v, want [a b]", ids)
	}
}

func TestReorderIDs_Empty(t *testing.T) {
	if ids := reorderIDs(nil); len(ids) != 0 {
		t.Errorf("ids = %v, want 빈 목록", ids)
	}
}
