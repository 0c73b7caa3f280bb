//go:build !android

package utils

// EnsureStorageDir 桌面平台上 gdata 会自行创建存档目录
func EnsureStorageDir() error {
	return nil
}
