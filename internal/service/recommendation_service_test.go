package service

import (
	"context"
	"errors"
	"math/rand"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

// 内存假仓储，隔离数据库

type fakeProfiles struct {
	users map[uint]*model.User
	err   error
}

func (f *fakeProfiles) FindByID(id uint) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakePerformances struct {
	records []model.SubtopicPerformance
	err     error
}

func (f *fakePerformances) FindByUserID(ctx context.Context, userID uint) ([]model.SubtopicPerformance, error) {
	return f.records, f.err
}

type fakeGoals struct {
	goals []model.ExamGoal
	err   error
}

func (f *fakeGoals) FindByUserID(ctx context.Context, userID uint) ([]model.ExamGoal, error) {
	return f.goals, f.err
}

type fakeActivities struct {
	activities []model.StudyActivity
	err        error
}

func (f *fakeActivities) FindRecentCompleted(ctx context.Context, userID uint, excludeTypes []model.ActivityType, limit int) ([]model.StudyActivity, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.StudyActivity, 0, limit)
	for _, activity := range f.activities {
		excluded := false
		for _, t := range excludeTypes {
			if activity.Type == t {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, activity)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeSettings struct {
	values map[string]int
	err    error
}

func (f *fakeSettings) GetInt(ctx context.Context, key string) (*int, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.values[key]; ok {
		return &v, nil
	}
	return nil, nil
}

// scriptedRand 按预置序列出数，耗尽后返回零值
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

type seededRand struct{ r *rand.Rand }

func (s seededRand) Float64() float64 { return s.r.Float64() }
func (s seededRand) Intn(n int) int   { return s.r.Intn(n) }

func uintPtr(v uint) *uint { return &v }

func newTestService() *RecommendationService {
	return &RecommendationService{
		UserRepo:        &fakeProfiles{users: map[uint]*model.User{1: {Name: "alice"}}},
		PerformanceRepo: &fakePerformances{},
		GoalRepo:        &fakeGoals{},
		ActivityRepo:    &fakeActivities{},
		SettingRepo:     &fakeSettings{},
		rng:             &scriptedRand{},
		now:             func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestRecommendMissingProfile(t *testing.T) {
	s := newTestService()
	s.UserRepo = &fakeProfiles{users: map[uint]*model.User{}}

	_, err := s.Recommend(context.Background(), 42, StrategyImprovement)
	if !errors.Is(err, util.ErrNoLearnerProfile) {
		t.Fatalf("expected ErrNoLearnerProfile, got %v", err)
	}
}

func TestRecommendRepositoryFailurePropagates(t *testing.T) {
	s := newTestService()
	boom := errors.New("connection refused")
	s.PerformanceRepo = &fakePerformances{err: boom}

	_, err := s.Recommend(context.Background(), 1, StrategyImprovement)
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}

func TestRecommendUnknownStrategy(t *testing.T) {
	s := newTestService()
	_, err := s.Recommend(context.Background(), 1, "aggressive")
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestImprovementPicksWithinTopThree(t *testing.T) {
	s := newTestService()
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 1, Performance: 90}, // 10
		{SubtopicID: 2, Performance: 95}, // 5
		{SubtopicID: 3, Performance: 99}, // 1
		{SubtopicID: 4, Performance: 50}, // 50，排第一
	}}
	// 0.99*total 落在最末候选上；第4名(score 1)不可能被选中
	s.rng = &scriptedRand{floats: []float64{0.99}}

	target, err := s.Recommend(context.Background(), 1, StrategyImprovement)
	if err != nil {
		t.Fatal(err)
	}
	if target.SubtopicID == nil || *target.SubtopicID != 2 {
		t.Errorf("expected subtopic 2 (last of top three), got %v", target.SubtopicID)
	}
	if target.Strategy != StrategyImprovement {
		t.Errorf("strategy = %q, want improvement", target.Strategy)
	}
	if target.Mode != model.SessionModeAuto {
		t.Errorf("mode = %q, want auto", target.Mode)
	}
}

// 加权随机的长期频率应收敛到分值占比
func TestImprovementWeightedDistribution(t *testing.T) {
	s := newTestService()
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 1, Performance: 90},  // 10
		{SubtopicID: 2, Performance: 95},  // 5
		{SubtopicID: 3, Performance: 100}, // 0
	}}
	s.rng = seededRand{r: rand.New(rand.NewSource(7))}

	const draws = 10000
	counts := map[uint]int{}
	for i := 0; i < draws; i++ {
		target, err := s.Recommend(context.Background(), 1, StrategyImprovement)
		if err != nil {
			t.Fatal(err)
		}
		counts[*target.SubtopicID]++
	}

	if counts[3] != 0 {
		t.Errorf("zero-score subtopic picked %d times", counts[3])
	}
	// 期望 2/3 与 1/3，容忍 3 个百分点的抽样误差
	ratio := float64(counts[1]) / draws
	if ratio < 0.63 || ratio > 0.70 {
		t.Errorf("subtopic 1 picked with ratio %.3f, want ~0.667", ratio)
	}
}

func TestImprovementAllNonPositiveIsDeterministic(t *testing.T) {
	s := newTestService()
	goal := 50.0
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 1, Performance: 53, Goal: &goal}, // -3
		{SubtopicID: 2, Performance: 51, Goal: &goal}, // -1
		{SubtopicID: 3, Performance: 50, Goal: &goal}, // 0
	}}
	s.rng = seededRand{r: rand.New(rand.NewSource(99))}

	for i := 0; i < 100; i++ {
		target, err := s.Recommend(context.Background(), 1, StrategyImprovement)
		if err != nil {
			t.Fatal(err)
		}
		// 排名第一是分值最高（最接近0）的记录
		if *target.SubtopicID != 3 {
			t.Fatalf("draw %d: got subtopic %d, want 3", i, *target.SubtopicID)
		}
	}
}

func TestImprovementSingleRecordAlwaysPicked(t *testing.T) {
	s := newTestService()
	weight := 2.0
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 7, Performance: 40, Goal: floatPtr(80), Weight: &weight},
	}}
	s.rng = seededRand{r: rand.New(rand.NewSource(3))}

	for i := 0; i < 50; i++ {
		target, err := s.Recommend(context.Background(), 1, StrategyImprovement)
		if err != nil {
			t.Fatal(err)
		}
		if *target.SubtopicID != 7 {
			t.Fatalf("got subtopic %d, want 7", *target.SubtopicID)
		}
	}
}

func TestImprovementFallsBackToReview(t *testing.T) {
	s := newTestService()
	s.ActivityRepo = &fakeActivities{activities: []model.StudyActivity{
		{Type: model.ActivityStudy, TopicID: uintPtr(11)},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyImprovement)
	if err != nil {
		t.Fatal(err)
	}
	if target.Strategy != StrategyReview {
		t.Errorf("strategy = %q, want review after fallback", target.Strategy)
	}
	if target.TopicID == nil || *target.TopicID != 11 {
		t.Errorf("expected topic 11, got %v", target.TopicID)
	}
}

func TestImprovementNoDataAnywhere(t *testing.T) {
	s := newTestService()

	_, err := s.Recommend(context.Background(), 1, StrategyImprovement)
	if !errors.Is(err, util.ErrNoPerformanceData) {
		t.Fatalf("expected ErrNoPerformanceData, got %v", err)
	}
}

func TestReviewUniformPick(t *testing.T) {
	s := newTestService()
	s.ActivityRepo = &fakeActivities{activities: []model.StudyActivity{
		{Type: model.ActivityStudy, SubtopicID: uintPtr(1)},
		{Type: model.ActivityRevision, SubtopicID: uintPtr(2)},
		{Type: model.ActivityExercise, SubtopicID: uintPtr(3)},
	}}
	s.rng = seededRand{r: rand.New(rand.NewSource(11))}

	const draws = 9000
	counts := map[uint]int{}
	for i := 0; i < draws; i++ {
		target, err := s.Recommend(context.Background(), 1, StrategyReview)
		if err != nil {
			t.Fatal(err)
		}
		counts[*target.SubtopicID]++
	}

	for id, count := range counts {
		ratio := float64(count) / draws
		if ratio < 0.30 || ratio > 0.37 {
			t.Errorf("subtopic %d picked with ratio %.3f, want ~0.333", id, ratio)
		}
	}
}

func TestReviewExcludesHomework(t *testing.T) {
	s := newTestService()
	s.ActivityRepo = &fakeActivities{activities: []model.StudyActivity{
		{Type: model.ActivityHomework, SubtopicID: uintPtr(1)},
		{Type: model.ActivityStudy, SubtopicID: uintPtr(2)},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyReview)
	if err != nil {
		t.Fatal(err)
	}
	if *target.SubtopicID != 2 {
		t.Errorf("homework activity must not be recommended, got subtopic %d", *target.SubtopicID)
	}
}

func TestReviewPrefersMostSpecificTag(t *testing.T) {
	s := newTestService()
	s.ActivityRepo = &fakeActivities{activities: []model.StudyActivity{
		{Type: model.ActivityStudy, SubtopicID: uintPtr(4), TopicID: uintPtr(5), SubjectID: uintPtr(6)},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyReview)
	if err != nil {
		t.Fatal(err)
	}
	if target.SubtopicID == nil || *target.SubtopicID != 4 {
		t.Errorf("expected subtopic tag preferred, got %+v", target)
	}
	if target.TopicID != nil || target.SubjectID != nil {
		t.Errorf("coarser tags should stay empty, got %+v", target)
	}
}

func TestReviewUntaggedActivity(t *testing.T) {
	s := newTestService()
	s.ActivityRepo = &fakeActivities{activities: []model.StudyActivity{
		{Type: model.ActivityStudy},
	}}

	_, err := s.Recommend(context.Background(), 1, StrategyReview)
	if !errors.Is(err, util.ErrNoRecentActivity) {
		t.Fatalf("expected ErrNoRecentActivity, got %v", err)
	}
}

func TestReviewFallsBackToImprovement(t *testing.T) {
	s := newTestService()
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 9, Performance: 20},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyReview)
	if err != nil {
		t.Fatal(err)
	}
	if target.Strategy != StrategyImprovement {
		t.Errorf("strategy = %q, want improvement after fallback", target.Strategy)
	}
	if *target.SubtopicID != 9 {
		t.Errorf("got subtopic %d, want 9", *target.SubtopicID)
	}
}

func TestBalancedWeaknessesPhase(t *testing.T) {
	s := newTestService()
	now := s.now()
	first := now.AddDate(0, 0, 10)
	second := now.AddDate(0, 0, 40)
	s.GoalRepo = &fakeGoals{goals: []model.ExamGoal{
		{FirstPhaseDate: &first, SecondPhaseDate: &second},
	}}
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 5, Performance: 30},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyBalanced)
	if err != nil {
		t.Fatal(err)
	}
	if target.Phase != PhaseWeaknesses {
		t.Errorf("phase = %q, want weaknesses", target.Phase)
	}
	if target.Strategy != StrategyImprovement {
		t.Errorf("strategy = %q, want improvement", target.Strategy)
	}
	if target.Difficulty != nil {
		t.Errorf("difficulty should be unset outside exam period, got %d", *target.Difficulty)
	}
}

func TestBalancedExamPeriodForcesDifficulty(t *testing.T) {
	s := newTestService()
	now := s.now()
	first := now.AddDate(0, 0, -5)
	second := now.AddDate(0, 0, 20)
	s.GoalRepo = &fakeGoals{goals: []model.ExamGoal{
		{FirstPhaseDate: &first, SecondPhaseDate: &second},
	}}
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 5, Performance: 30},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyBalanced)
	if err != nil {
		t.Fatal(err)
	}
	if target.Phase != PhaseExamPeriod {
		t.Errorf("phase = %q, want exam_period", target.Phase)
	}
	if target.Difficulty == nil || *target.Difficulty != examPeriodDifficulty {
		t.Errorf("difficulty = %v, want %d", target.Difficulty, examPeriodDifficulty)
	}
}

func TestBalancedPreIntensivePrefersReview(t *testing.T) {
	s := newTestService()
	now := s.now()
	first := now.AddDate(0, 0, 200)
	second := now.AddDate(0, 0, 230)
	s.GoalRepo = &fakeGoals{goals: []model.ExamGoal{
		{FirstPhaseDate: &first, SecondPhaseDate: &second},
	}}
	s.ActivityRepo = &fakeActivities{activities: []model.StudyActivity{
		{Type: model.ActivityStudy, SubtopicID: uintPtr(3)},
	}}
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 8, Performance: 10},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyBalanced)
	if err != nil {
		t.Fatal(err)
	}
	if target.Phase != PhasePreIntensive {
		t.Errorf("phase = %q, want pre_intensive", target.Phase)
	}
	if target.Strategy != StrategyReview {
		t.Errorf("strategy = %q, want review in pre-intensive phase", target.Strategy)
	}
}

func TestBalancedPreIntensiveFallsBackToImprovement(t *testing.T) {
	s := newTestService()
	now := s.now()
	first := now.AddDate(0, 0, 200)
	second := now.AddDate(0, 0, 230)
	s.GoalRepo = &fakeGoals{goals: []model.ExamGoal{
		{FirstPhaseDate: &first, SecondPhaseDate: &second},
	}}
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 8, Performance: 10},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyBalanced)
	if err != nil {
		t.Fatal(err)
	}
	if target.Strategy != StrategyImprovement {
		t.Errorf("strategy = %q, want improvement when no activities", target.Strategy)
	}
	if target.Phase != PhasePreIntensive {
		t.Errorf("phase = %q, want pre_intensive preserved through fallback", target.Phase)
	}
}

func TestBalancedNoMilestones(t *testing.T) {
	s := newTestService()
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 2, Performance: 60},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyBalanced)
	if err != nil {
		t.Fatal(err)
	}
	if target.Phase != PhaseDefault {
		t.Errorf("phase = %q, want default", target.Phase)
	}
	if target.Strategy != StrategyImprovement {
		t.Errorf("strategy = %q, want improvement", target.Strategy)
	}
}

// 空策略等同 balanced
func TestRecommendEmptyStrategyIsBalanced(t *testing.T) {
	s := newTestService()
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 2, Performance: 60},
	}}

	target, err := s.Recommend(context.Background(), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if target.Phase != PhaseDefault {
		t.Errorf("phase = %q, want default", target.Phase)
	}
}

func TestBalancedReadsWindowSettings(t *testing.T) {
	s := newTestService()
	now := s.now()
	// 一阶段在45天后：默认30天窗口外，但配置 60 天后应落入窗口
	first := now.AddDate(0, 0, 45)
	second := now.AddDate(0, 0, 80)
	s.GoalRepo = &fakeGoals{goals: []model.ExamGoal{
		{FirstPhaseDate: &first, SecondPhaseDate: &second},
	}}
	s.SettingRepo = &fakeSettings{values: map[string]int{
		util.SettingIntensiveWindowDays: 60,
	}}
	s.PerformanceRepo = &fakePerformances{records: []model.SubtopicPerformance{
		{SubtopicID: 1, Performance: 0},
	}}

	target, err := s.Recommend(context.Background(), 1, StrategyBalanced)
	if err != nil {
		t.Fatal(err)
	}
	if target.Phase != PhaseWeaknesses {
		t.Errorf("phase = %q, want weaknesses with widened window", target.Phase)
	}
}
