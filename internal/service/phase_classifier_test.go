package service

import (
	"studytrack_backend/internal/model"
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func day(offset int) time.Time {
	base := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestClassifyStudyPhase(t *testing.T) {
	today := day(0)

	tests := []struct {
		name      string
		first     *time.Time
		second    *time.Time
		window    int
		threshold int
		want      StudyPhase
	}{
		{
			name: "no milestones",
			want: PhaseDefault,
		},
		{
			name:  "inside intensive window",
			first: datePtr(day(10)),
			want:  PhaseWeaknesses,
		},
		{
			name:  "on first phase date",
			first: datePtr(day(0)),
			want:  PhaseWeaknesses,
		},
		{
			name:  "exactly window days before first phase is excluded",
			first: datePtr(day(30)),
			want:  PhaseDefault,
		},
		{
			name:  "one day inside the window boundary",
			first: datePtr(day(29)),
			want:  PhaseWeaknesses,
		},
		{
			name:   "between first and second phase",
			first:  datePtr(day(-5)),
			second: datePtr(day(20)),
			want:   PhaseExamPeriod,
		},
		{
			name:   "on second phase date",
			first:  datePtr(day(-40)),
			second: datePtr(day(0)),
			want:   PhaseExamPeriod,
		},
		{
			name:   "after second phase date",
			first:  datePtr(day(-40)),
			second: datePtr(day(-1)),
			want:   PhaseDefault,
		},
		{
			name:  "far before first phase",
			first: datePtr(day(121)),
			want:  PhasePreIntensive,
		},
		{
			name:  "exactly theoretical threshold days out is not pre-intensive",
			first: datePtr(day(120)),
			want:  PhaseDefault,
		},
		{
			name:   "window takes priority over exam period",
			first:  datePtr(day(10)),
			second: datePtr(day(40)),
			want:   PhaseWeaknesses,
		},
		{
			name:      "custom window widens weaknesses phase",
			first:     datePtr(day(45)),
			window:    60,
			threshold: 120,
			want:      PhaseWeaknesses,
		},
		{
			name:      "custom threshold shrinks pre-intensive phase",
			first:     datePtr(day(100)),
			window:    30,
			threshold: 90,
			want:      PhasePreIntensive,
		},
		{
			name:   "second phase alone never classifies",
			second: datePtr(day(20)),
			want:   PhaseDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := tt.window
			if window == 0 {
				window = DefaultIntensiveWindowDays
			}
			threshold := tt.threshold
			if threshold == 0 {
				threshold = DefaultTheoreticalThresholdDays
			}

			got := ClassifyStudyPhase(today, tt.first, tt.second, window, threshold)
			if got != tt.want {
				t.Errorf("ClassifyStudyPhase() = %q, want %q", got, tt.want)
			}
		})
	}
}

// 时刻不同但日期相同的输入必须得到相同结果
func TestClassifyStudyPhaseIgnoresTimeOfDay(t *testing.T) {
	first := datePtr(day(0).Add(23 * time.Hour))

	morning := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)

	gotMorning := ClassifyStudyPhase(morning, first, nil, DefaultIntensiveWindowDays, DefaultTheoreticalThresholdDays)
	gotNight := ClassifyStudyPhase(night, first, nil, DefaultIntensiveWindowDays, DefaultTheoreticalThresholdDays)

	if gotMorning != PhaseWeaknesses || gotNight != PhaseWeaknesses {
		t.Errorf("expected weaknesses for both, got %q and %q", gotMorning, gotNight)
	}
}

func TestDeriveMilestoneDates(t *testing.T) {
	now := day(0)

	t.Run("skips goals with past or missing second phase", func(t *testing.T) {
		goals := []model.ExamGoal{
			{FirstPhaseDate: datePtr(day(5)), SecondPhaseDate: datePtr(day(-1))},
			{FirstPhaseDate: datePtr(day(8))},
		}
		first, second := DeriveMilestoneDates(goals, now)
		if first != nil || second != nil {
			t.Errorf("expected no milestones, got first=%v second=%v", first, second)
		}
	})

	t.Run("picks earliest first and latest second", func(t *testing.T) {
		goals := []model.ExamGoal{
			{FirstPhaseDate: datePtr(day(20)), SecondPhaseDate: datePtr(day(60))},
			{FirstPhaseDate: datePtr(day(10)), SecondPhaseDate: datePtr(day(40))},
			{FirstPhaseDate: datePtr(day(30)), SecondPhaseDate: datePtr(day(90))},
		}
		first, second := DeriveMilestoneDates(goals, now)
		if first == nil || !first.Equal(day(10)) {
			t.Errorf("first = %v, want %v", first, day(10))
		}
		if second == nil || !second.Equal(day(90)) {
			t.Errorf("second = %v, want %v", second, day(90))
		}
	})

	t.Run("second phase counted even without first phase date", func(t *testing.T) {
		goals := []model.ExamGoal{
			{SecondPhaseDate: datePtr(day(50))},
			{FirstPhaseDate: datePtr(day(15)), SecondPhaseDate: datePtr(day(35))},
		}
		first, second := DeriveMilestoneDates(goals, now)
		if first == nil || !first.Equal(day(15)) {
			t.Errorf("first = %v, want %v", first, day(15))
		}
		if second == nil || !second.Equal(day(50)) {
			t.Errorf("second = %v, want %v", second, day(50))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		first, second := DeriveMilestoneDates(nil, now)
		if first != nil || second != nil {
			t.Errorf("expected nil milestones, got first=%v second=%v", first, second)
		}
	})
}
