package utils

// settingsSubdir 设置文件所在的子目录名
const settingsSubdir = "settings"
