package entities

import (
	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// NewCodeInputEntity 创建追踪码输入框实体
//
// 参数：
//   - em: 实体管理器
//   - x, y, width, height: 输入框位置和尺寸
//   - maxLength: 最大字符数
//   - onSubmit: 回车 / 虚拟键盘 Done 时调用
//
// 返回：
//   - 输入框实体ID（默认获得焦点）
func NewCodeInputEntity(
	em *ecs.EntityManager,
	x, y, width, height float64,
	maxLength int,
	onSubmit func(text string),
) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.TextInputComponent{
		Width:         width,
		Height:        height,
		MaxLength:     maxLength,
		Placeholder:   "ABC123",
		UpperCase:     true,
		IsFocused:     true,
		CursorVisible: true,
		OnSubmit:      onSubmit,
	})
	ecs.AddComponent(em, entity, &components.UIComponent{State: components.UINormal})

	return entity
}
