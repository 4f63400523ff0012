package game

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontWeight 内置字体字重
type FontWeight int

const (
	// FontRegular 常规字重
	FontRegular FontWeight = iota
	// FontBold 粗体
	FontBold
)

// ResourceManager 集中管理 UI 资源
//
// 界面完全由矢量图形和内置 Go 字体绘制，不依赖外部图片文件。
// 字体源只解析一次，不同字号的 GoTextFace 按需创建并缓存。
//
// 非线程安全：只能在游戏主循环所在的 goroutine 中调用。
type ResourceManager struct {
	sources       map[FontWeight]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace
}

// NewResourceManager 创建资源管理器并解析内置字体
//
// 返回：
//   - *ResourceManager: 资源管理器实例
//   - error: 字体数据解析失败时返回错误
func NewResourceManager() (*ResourceManager, error) {
	rm := &ResourceManager{
		sources:       make(map[FontWeight]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}

	fonts := map[FontWeight][]byte{
		FontRegular: goregular.TTF,
		FontBold:    gobold.TTF,
	}
	for weight, data := range fonts {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in font (weight=%d): %w", weight, err)
		}
		rm.sources[weight] = src
	}

	log.Printf("[ResourceManager] Built-in fonts loaded (%d weights)", len(rm.sources))
	return rm, nil
}

// Font 返回指定字号的常规字体
func (rm *ResourceManager) Font(size float64) *text.GoTextFace {
	return rm.FontWithWeight(FontRegular, size)
}

// BoldFont 返回指定字号的粗体
func (rm *ResourceManager) BoldFont(size float64) *text.GoTextFace {
	return rm.FontWithWeight(FontBold, size)
}

// FontWithWeight 返回指定字重和字号的字体（带缓存）
// 未知字重回退到常规字体
func (rm *ResourceManager) FontWithWeight(weight FontWeight, size float64) *text.GoTextFace {
	key := fmt.Sprintf("%d:%.1f", weight, size)
	if face, ok := rm.fontFaceCache[key]; ok {
		return face
	}

	src, ok := rm.sources[weight]
	if !ok {
		src = rm.sources[FontRegular]
	}

	face := &text.GoTextFace{Source: src, Size: size}
	rm.fontFaceCache[key] = face
	return face
}
