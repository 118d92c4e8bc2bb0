//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需处理
// gdata 会在用户配置目录下自动创建 appName 对应的目录
func EnsureStorageDir(appName string) error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串
func GetStoragePath() string {
	return ""
}
