package model

import "time"

type AchievementCode string

const (
	AchievementFirstSession  AchievementCode = "first_session"
	AchievementStreak7       AchievementCode = "streak_7"
	AchievementStreak30      AchievementCode = "streak_30"
	AchievementHundredRight  AchievementCode = "hundred_right"
	AchievementSubtopicAced  AchievementCode = "subtopic_aced"
	AchievementEarlyPlanner  AchievementCode = "early_planner"
	AchievementExamSurvivor  AchievementCode = "exam_survivor"
	AchievementNightOwl      AchievementCode = "night_owl"
	AchievementWeekendWorker AchievementCode = "weekend_worker"
)

type Achievement struct {
	BaseModel
	Code        AchievementCode `gorm:"size:50;unique;not null" json:"code"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Icon        string          `gorm:"size:255" json:"icon"`
	XPReward    int             `gorm:"default:50" json:"xpReward"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type UserAchievement struct {
	BaseModel
	UserID        uint      `gorm:"index:idx_user_achievement,unique;type:bigint unsigned;not null" json:"userId"`
	AchievementID uint      `gorm:"index:idx_user_achievement,unique;type:bigint unsigned;not null" json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`

	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
