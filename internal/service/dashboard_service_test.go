package service

import (
	"errors"
	"testing"

	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

// 面板上的任务状态入口必须校验归属，不能改到别人的任务
func TestDashboardUpdateTaskStatusRejectsForeignTask(t *testing.T) {
	db, mock := newMockGorm(t)
	svc := &DashboardService{TaskRepo: repository.NewTaskRepository(db)}

	// 按 id+user_id 查不到记录，后面不该再有 UPDATE
	mock.ExpectQuery("SELECT .* FROM .study_tasks. WHERE id = .* AND user_id = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.UpdateTaskStatus(2, 7, model.TaskCompleted)
	if !errors.Is(err, util.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestDashboardUpdateTaskStatusUpdatesOwnTask(t *testing.T) {
	db, mock := newMockGorm(t)
	svc := &DashboardService{TaskRepo: repository.NewTaskRepository(db)}

	mock.ExpectQuery("SELECT .* FROM .study_tasks. WHERE id = .* AND user_id = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(7, 2))
	mock.ExpectExec("UPDATE .study_tasks. SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.UpdateTaskStatus(2, 7, model.TaskCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}
