package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可以独立更新和绘制的画面
type Scene interface {
	// Update 按经过的秒数推进
	Update(deltaTime float64)
	// Draw 绘制到屏幕
	Draw(screen *ebiten.Image)
}

// Closer 可选接口，场景被替换时调用
type Closer interface {
	Close()
}

// SceneFactory 按目录下标创建关卡场景，返回 nil 表示创建失败
type SceneFactory func(index int) Scene

// SceneManager 保证同一时间只有一个场景在更新和绘制
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换场景，旧场景实现 Closer 时先关闭
func (sm *SceneManager) SwitchTo(scene Scene) {
	if c, ok := sm.currentScene.(Closer); ok && sm.currentScene != scene {
		c.Close()
	}
	sm.currentScene = scene
}

// CurrentScene 当前场景，可能为 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// LoadLevel 通过工厂创建关卡场景并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) LoadLevel(index int) bool {
	log.Printf("[SceneManager] 加载关卡 #%d", index)
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}
	next := sm.sceneFactory(index)
	if next == nil {
		log.Printf("[SceneManager] 错误: 无法创建关卡场景 #%d", index)
		return false
	}
	sm.SwitchTo(next)
	return true
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
