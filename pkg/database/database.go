package database

import (
	"fmt"
	"log"
	"studytrack_backend/internal/config"
	"studytrack_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// shouldMigrate release 模式默认跳过迁移，-migrate / -migrate-only 可强制执行
func shouldMigrate(cfg *config.Config) bool {
	return cfg.Server.Mode != "release" || cfg.ForceMigrate
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !shouldMigrate(cfg) {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Topic{},
		&model.Subtopic{},
		&model.SubtopicPerformance{},
		&model.ExamGoal{},
		&model.StudyActivity{},
		&model.StudyTask{},
		&model.ExerciseQuestion{},
		&model.ExerciseSession{},
		&model.ExerciseSessionAnswer{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Checkin{},
		&model.Motivation{},
		&model.AppSetting{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认的激励短句
	var count int64
	db.Model(&model.Motivation{}).Count(&count)
	if count == 0 {
		defaultMotivations := []string{
			"每一道练习题都是向目标迈出的一步。坚持下去！",
			"复习不是重复，而是让知识真正属于你。",
			"Consistency beats intensity. Study a little every day.",
			"考试临近时，攻克弱项比刷熟悉的题更有价值。",
		}
		for i, content := range defaultMotivations {
			motivation := &model.Motivation{
				Content:         content,
				IsEnabled:       true,
				IsCurrentlyUsed: i == 0,
			}
			db.Create(motivation)
		}
	}

	// 默认徽章（为空时初始化）
	var achCount int64
	db.Model(&model.Achievement{}).Count(&achCount)
	if achCount == 0 {
		defaultAchievements := []model.Achievement{
			{Code: model.AchievementFirstSession, Name: "首战告捷", Description: "完成第一次练习", XPReward: 50},
			{Code: model.AchievementStreak7, Name: "七日坚持", Description: "连续签到 7 天", XPReward: 100},
			{Code: model.AchievementStreak30, Name: "三十而立", Description: "连续签到 30 天", XPReward: 300},
			{Code: model.AchievementHundredRight, Name: "百题斩", Description: "累计答对 100 道题", XPReward: 200},
			{Code: model.AchievementSubtopicAced, Name: "专项精通", Description: "某个子主题达到目标掌握度", XPReward: 150},
			{Code: model.AchievementEarlyPlanner, Name: "未雨绸缪", Description: "提前 120 天以上制定考试计划", XPReward: 80},
			{Code: model.AchievementExamSurvivor, Name: "大考勇士", Description: "在考试周期内完成 10 次练习", XPReward: 250},
			{Code: model.AchievementNightOwl, Name: "夜猫子", Description: "在深夜完成一次练习", XPReward: 60},
			{Code: model.AchievementWeekendWorker, Name: "周末战士", Description: "在周末完成一次练习", XPReward: 60},
		}
		for _, a := range defaultAchievements {
			db.Create(&a)
		}
	}

	return db, nil
}
