package repository

import (
	"context"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

// MySQL 拒绝 IN 子查询里的 LIMIT（错误 1235），最近会话必须以派生表的形式 JOIN 进来
func TestAccuracyBySubtopicJoinsRecentSessionsAsDerivedTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExerciseSessionRepository(db)

	mock.ExpectQuery(`JOIN \(SELECT .* FROM .*exercise_sessions.* ORDER BY finished_at DESC LIMIT .*\) recent ON recent\.id = exercise_session_answers\.session_id`).
		WillReturnRows(sqlmock.NewRows([]string{"answered", "correct"}).AddRow(8, 6))

	accuracy, ok, err := repo.AccuracyBySubtopic(context.Background(), 1, 42, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected data to be reported as present")
	}
	if math.Abs(accuracy-75) > 1e-9 {
		t.Fatalf("expected accuracy 75, got %v", accuracy)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("query shape mismatch: %v", err)
	}
}

func TestAccuracyBySubtopicNoAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExerciseSessionRepository(db)

	mock.ExpectQuery(`JOIN \(SELECT .* LIMIT .*\) recent`).
		WillReturnRows(sqlmock.NewRows([]string{"answered", "correct"}).AddRow(0, nil))

	_, ok, err := repo.AccuracyBySubtopic(context.Background(), 1, 42, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no data for subtopic without answers")
	}
}
