//go:build mobile

package utils

// IsMobile 移动端构建始终启用触屏布局与虚拟键盘
func IsMobile() bool {
	return true
}
