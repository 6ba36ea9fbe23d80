package service

import (
	"math"
	"studytrack_backend/internal/model"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name   string
		record model.SubtopicPerformance
		want   float64
	}{
		{
			name:   "all fields set",
			record: model.SubtopicPerformance{Performance: 40, Goal: floatPtr(80), Weight: floatPtr(2), PriorityMultiplier: floatPtr(1.5)},
			want:   120,
		},
		{
			name:   "defaults when optional fields missing",
			record: model.SubtopicPerformance{Performance: 30},
			want:   70,
		},
		{
			name:   "zero performance falls back to zero",
			record: model.SubtopicPerformance{},
			want:   100,
		},
		{
			name:   "performance above goal yields negative score",
			record: model.SubtopicPerformance{Performance: 95, Goal: floatPtr(80)},
			want:   -15,
		},
		{
			name:   "zero weight zeroes the score",
			record: model.SubtopicPerformance{Performance: 10, Weight: floatPtr(0)},
			want:   0,
		},
		{
			name:   "multiplier amplifies",
			record: model.SubtopicPerformance{Performance: 50, PriorityMultiplier: floatPtr(3)},
			want:   150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityScore(tt.record)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PriorityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankSubtopicPriorities(t *testing.T) {
	records := []model.SubtopicPerformance{
		{SubtopicID: 1, Performance: 80},                      // 20
		{SubtopicID: 2, Performance: 20},                      // 80
		{SubtopicID: 3, Performance: 50, Weight: floatPtr(2)}, // 100
		{SubtopicID: 4, Performance: 20},                      // 80, 与 2 同分
	}

	ranked := RankSubtopicPriorities(records)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(ranked))
	}

	wantOrder := []uint{3, 2, 4, 1}
	for i, want := range wantOrder {
		if ranked[i].SubtopicID != want {
			t.Errorf("position %d: got subtopic %d, want %d", i, ranked[i].SubtopicID, want)
		}
	}
}

func TestRankSubtopicPrioritiesStableOnTies(t *testing.T) {
	records := []model.SubtopicPerformance{
		{SubtopicID: 7, Performance: 50},
		{SubtopicID: 8, Performance: 50},
		{SubtopicID: 9, Performance: 50},
	}

	ranked := RankSubtopicPriorities(records)
	wantOrder := []uint{7, 8, 9}
	for i, want := range wantOrder {
		if ranked[i].SubtopicID != want {
			t.Errorf("position %d: got subtopic %d, want %d", i, ranked[i].SubtopicID, want)
		}
	}
}

func TestRankSubtopicPrioritiesEmpty(t *testing.T) {
	ranked := RankSubtopicPriorities(nil)
	if ranked == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(ranked) != 0 {
		t.Fatalf("expected no entries, got %d", len(ranked))
	}
}
