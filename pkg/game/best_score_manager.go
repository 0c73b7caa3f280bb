package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	bestScoresObject   = "scores"
	bestScoresProperty = "best"
)

// BestScoreManager 最佳成绩管理器
// 以关卡ID为键保存每个关卡的最佳用时和最少笔画数
type BestScoreManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	bests        map[string]Score
}

// NewBestScoreManager 创建最佳成绩管理器并加载已保存的记录
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//
// 返回：
//   - *BestScoreManager: 管理器实例（加载失败时为空记录）
//   - error: 加载失败的原因（不影响使用）
func NewBestScoreManager(gdataManager *gdata.Manager) (*BestScoreManager, error) {
	m := &BestScoreManager{
		gdataManager: gdataManager,
		bests:        make(map[string]Score),
	}
	if err := m.Load(); err != nil {
		log.Printf("[BestScoreManager] Warning: Failed to load best scores: %v (starting fresh)", err)
		return m, err
	}
	return m, nil
}

// Load 从 gdata 加载记录
func (m *BestScoreManager) Load() error {
	m.bests = make(map[string]Score)
	if m.gdataManager == nil {
		return nil
	}
	if !m.gdataManager.ObjectPropExists(bestScoresObject, bestScoresProperty) {
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(bestScoresObject, bestScoresProperty)
	if err != nil {
		return fmt.Errorf("failed to load best scores: %w", err)
	}
	loaded := make(map[string]Score)
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal best scores: %w", err)
	}
	m.bests = loaded
	log.Printf("[BestScoreManager] Loaded best scores for %d levels", len(loaded))
	return nil
}

// Save 保存记录到 gdata，降级模式下直接返回 nil
func (m *BestScoreManager) Save() error {
	if m.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(m.bests)
	if err != nil {
		return fmt.Errorf("failed to marshal best scores: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(bestScoresObject, bestScoresProperty, data); err != nil {
		return fmt.Errorf("failed to save best scores: %w", err)
	}
	return nil
}

// Best 返回关卡的最佳成绩
func (m *BestScoreManager) Best(levelID string) (Score, bool) {
	s, ok := m.bests[levelID]
	return s, ok
}

// Record 记录一次通关成绩并持久化
//
// 返回：
//   - Score: 合并后的最佳成绩
//   - error: 保存失败时返回错误（内存中的记录已更新）
func (m *BestScoreManager) Record(levelID string, score Score) (Score, error) {
	var old *Score
	if prev, ok := m.bests[levelID]; ok {
		old = &prev
	}
	merged := MergeBest(old, score)
	m.bests[levelID] = merged
	log.Printf("[BestScoreManager] Level %s: score %s/%d, best %s/%d",
		levelID, score.TimeString(), score.Strokes, merged.TimeString(), merged.Strokes)
	return merged, m.Save()
}

// NextLevelIndex 按目录顺序返回第一个没有记录的关卡下标
// 全部完成时返回 len(levelIDs)
func (m *BestScoreManager) NextLevelIndex(levelIDs []string) int {
	for i, id := range levelIDs {
		if _, ok := m.bests[id]; !ok {
			return i
		}
	}
	return len(levelIDs)
}

// IsUnlocked 已完成的关卡和下一个待完成的关卡可以进入
func (m *BestScoreManager) IsUnlocked(levelIDs []string, i int) bool {
	if i < 0 || i >= len(levelIDs) {
		return false
	}
	if _, ok := m.bests[levelIDs[i]]; ok {
		return true
	}
	return i == m.NextLevelIndex(levelIDs)
}
