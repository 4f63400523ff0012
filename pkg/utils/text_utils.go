package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行
//   - 单个单词超过最大宽度时按字符强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词本身超宽，按字符断开
		if measureTextWidth(word, font) > maxWidth {
			pieces := breakWord(word, font, maxWidth)
			lines = append(lines, pieces[:len(pieces)-1]...)
			currentLine = pieces[len(pieces)-1]
		} else {
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// breakWord 按字符把超宽单词拆成若干段
func breakWord(word string, font *text.GoTextFace, maxWidth float64) []string {
	var pieces []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]

		test := current + string(r)
		if current != "" && measureTextWidth(test, font) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = test
	}
	return append(pieces, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}
