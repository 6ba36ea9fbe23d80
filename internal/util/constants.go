package util

import "strings"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 头像上传相关常量
const (
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

const MaxAvatarSize = 5 << 20

var (
	AllowedAvatarExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
)

func IsAllowedAvatarExt(ext string) bool {
	for _, allowed := range AllowedAvatarExtensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// app_settings 键名
const (
	SettingIntensiveWindowDays      = "intensive_window_days"
	SettingTheoreticalThresholdDays = "theoretical_threshold_days"
)
