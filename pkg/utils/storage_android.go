//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// gdata 在 Android 上以 /data/data/{package}/ 为根，但不会创建子目录
const androidDataRoot = "/data/data"

// EnsureStorageDir 在 gdata.Open 之前创建并检查设置目录
func EnsureStorageDir() error {
	dir := StoragePath()
	if dir == "" {
		return fmt.Errorf("cannot resolve android package name")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// StoragePath 返回设置目录，包名无法识别时返回空字符串
func StoragePath() string {
	pkg, err := androidPackageName()
	if err != nil {
		return ""
	}
	return filepath.Join(androidDataRoot, pkg, settingsSubdir)
}

// androidPackageName 应用进程的 argv[0] 就是包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimSpace(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
