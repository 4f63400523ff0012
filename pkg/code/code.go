// Package code 生成和校验 6 位位置共享码
package code

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Alphabet 共享码字符集（大写字母 + 数字）
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length 共享码长度
const Length = 6

var (
	// ErrInvalidLength 长度不是 6
	ErrInvalidLength = errors.New("code must be exactly 6 characters")
	// ErrInvalidCharacter 含有字符集以外的字符
	ErrInvalidCharacter = errors.New("code may only contain A-Z and 0-9")
)

// Generate 从 Alphabet 中均匀采样生成共享码
// r 为 nil 时使用全局随机源；不做碰撞检测
func Generate(r *rand.Rand) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		var n int
		if r != nil {
			n = r.IntN(len(Alphabet))
		} else {
			n = rand.IntN(len(Alphabet))
		}
		b.WriteByte(Alphabet[n])
	}
	return b.String()
}

// Normalize 去除首尾空白并转为大写
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate 校验已规范化的共享码
func Validate(s string) error {
	if len([]rune(s)) != Length {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, len([]rune(s)))
	}
	for _, c := range s {
		if !strings.ContainsRune(Alphabet, c) {
			return fmt.Errorf("%w: %q", ErrInvalidCharacter, c)
		}
	}
	return nil
}

// Parse 规范化并校验用户输入
func Parse(input string) (string, error) {
	c := Normalize(input)
	if err := Validate(c); err != nil {
		return "", err
	}
	return c, nil
}
