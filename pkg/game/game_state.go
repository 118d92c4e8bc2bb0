package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "avalanche"

// GameState 跨前端共享的持久化状态
//
// 桌面端和终端前端各自创建一个实例；gdata 初始化失败时所有存储降级为内存模式，游戏仍可运行。
type GameState struct {
	gdataManager *gdata.Manager
	settings     *SettingsManager
	hallOfFame   *HallOfFame
}

// NewGameState 打开 appName 对应的 gdata 存储并加载设置和排行榜
func NewGameState(appName string) *GameState {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (progress will not be saved)", err)
		manager = nil
	}
	return NewGameStateWithManager(manager)
}

// NewGameStateWithManager 使用给定的 gdata Manager（可为 nil）
func NewGameStateWithManager(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager: manager,
		settings:     NewSettingsManager(manager),
		hallOfFame:   NewHallOfFame(manager),
	}
}

// GetGdataManager gdata Manager，降级模式下为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settings
}

// GetHallOfFame 排行榜
func (gs *GameState) GetHallOfFame() *HallOfFame {
	return gs.hallOfFame
}

// SaveAll 保存所有持久化数据（退出时调用）
func (gs *GameState) SaveAll() error {
	if err := gs.settings.Save(); err != nil {
		return err
	}
	return gs.hallOfFame.Save()
}
