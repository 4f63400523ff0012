package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	pending      Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene immediately.
// The old scene's OnExit runs before the new scene's OnEnter.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil {
		if lc, ok := sm.currentScene.(Lifecycle); ok {
			lc.OnExit()
		}
	}

	sm.currentScene = scene
	sm.pending = nil

	if scene != nil {
		if lc, ok := scene.(Lifecycle); ok {
			lc.OnEnter()
		}
	}
	log.Printf("[SceneManager] Switched scene to %T", scene)
}

// RequestSwitch 在当前帧结束后切换场景
// 场景在自己的 Update 或按钮回调里请求切换时使用，避免在 Update 中途卸载自己
func (sm *SceneManager) RequestSwitch(scene Scene) {
	sm.pending = scene
}

// Pending 返回等待切换的场景，没有时返回 nil
func (sm *SceneManager) Pending() Scene {
	return sm.pending
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Shutdown 退出当前场景（应用关闭时调用）
func (sm *SceneManager) Shutdown() {
	sm.SwitchTo(nil)
}

// Update updates the currently active scene, then applies a pending switch.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	if sm.pending != nil {
		sm.SwitchTo(sm.pending)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
