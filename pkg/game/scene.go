package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the app (role select, share, track entry, guidance).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Lifecycle 是一个可选接口，场景需要在进入 / 离开时获取或释放资源时实现
//
// SceneManager.SwitchTo 会先调用旧场景的 OnExit，再调用新场景的 OnEnter。
// OnExit 之后场景不得再修改任何状态（计时器、订阅、位置监听都要在这里释放）。
type Lifecycle interface {
	OnEnter()
	OnExit()
}
