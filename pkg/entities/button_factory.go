package entities

import (
	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// NewButton 创建矢量按钮实体
//
// 参数：
//   - em: 实体管理器
//   - x, y: 按钮左上角（屏幕坐标）
//   - width, height: 按钮尺寸
//   - text: 按钮文字
//   - style: 配色风格
//   - onClick: 点击回调函数
//
// 返回：
//   - 按钮实体ID
func NewButton(
	em *ecs.EntityManager,
	x, y, width, height float64,
	text string,
	style components.ButtonStyle,
	onClick func(),
) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: x,
		Y: y,
	})

	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Text:    text,
		Style:   style,
		Width:   width,
		Height:  height,
		State:   components.UINormal,
		Enabled: true,
		OnClick: onClick,
	})

	// 添加 UI 组件标记（方便过滤）
	ecs.AddComponent(em, entity, &components.UIComponent{
		State: components.UINormal,
	})

	return entity
}
