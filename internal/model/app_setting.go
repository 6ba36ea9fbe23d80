package model

// AppSetting 通用键值配置，部署可调参数（如推荐引擎的时间窗口）存放在这里。
// 未设置的键返回空，默认值由读取方负责。
type AppSetting struct {
	BaseModel
	Key         string `gorm:"size:100;unique;not null" json:"key"`
	Value       string `gorm:"size:255" json:"value"`
	Description string `gorm:"size:255" json:"description"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}
