package game

import (
	"fmt"
	"log"
	"unicode"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 排行榜容量和默认名字
const (
	HallOfFameSize  = 5
	DefaultNickname = "MOI"
)

// 存储路径常量
const (
	hallOfFameObject   = "halloffame"
	hallOfFameProperty = "entries"
	nicknameProperty   = "lastNickname"
)

// HallOfFameEntry 排行榜条目
// Name 为空表示空位
type HallOfFameEntry struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// HallOfFame 本地排行榜（前 5 名）和上次使用的名字
//
// 新成绩严格大于某一名次的分数时插入该位置，后面的条目下移，最后一名被挤掉。
// 插入的条目使用上次的名字，玩家可以在结束界面实时修改，每次修改都会保存。
type HallOfFame struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）

	entries  []HallOfFameEntry
	lastName string
	// editing 当前可编辑的名次，-1 表示没有
	editing int
}

// NewHallOfFame 创建排行榜并加载已保存的数据
// 加载失败时使用空榜单，不返回错误
func NewHallOfFame(gdataManager *gdata.Manager) *HallOfFame {
	h := &HallOfFame{
		gdataManager: gdataManager,
		entries:      make([]HallOfFameEntry, HallOfFameSize),
		lastName:     DefaultNickname,
		editing:      -1,
	}
	if err := h.Load(); err != nil {
		log.Printf("[HallOfFame] Warning: %v (using empty board)", err)
	}
	return h
}

// Load 从 gdata 加载榜单和上次的名字
func (h *HallOfFame) Load() error {
	if h.gdataManager == nil {
		return nil
	}

	if h.gdataManager.ObjectPropExists(hallOfFameObject, nicknameProperty) {
		data, err := h.gdataManager.LoadObjectProp(hallOfFameObject, nicknameProperty)
		if err != nil {
			return fmt.Errorf("failed to load nickname: %w", err)
		}
		if name := string(data); name != "" {
			h.lastName = name
		}
	}

	if !h.gdataManager.ObjectPropExists(hallOfFameObject, hallOfFameProperty) {
		return nil
	}

	data, err := h.gdataManager.LoadObjectProp(hallOfFameObject, hallOfFameProperty)
	if err != nil {
		return fmt.Errorf("failed to load hall of fame: %w", err)
	}

	var loaded []HallOfFameEntry
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal hall of fame: %w", err)
	}

	entries := make([]HallOfFameEntry, HallOfFameSize)
	copy(entries, loaded)
	h.entries = entries
	log.Printf("[HallOfFame] Loaded %d entries", len(loaded))
	return nil
}

// Save 保存榜单
func (h *HallOfFame) Save() error {
	if h.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal hall of fame: %w", err)
	}
	if err := h.gdataManager.SaveObjectProp(hallOfFameObject, hallOfFameProperty, data); err != nil {
		return fmt.Errorf("failed to save hall of fame: %w", err)
	}
	return nil
}

// saveNickname 保存上次的名字
func (h *HallOfFame) saveNickname() error {
	if h.gdataManager == nil {
		return nil
	}
	if err := h.gdataManager.SaveObjectProp(hallOfFameObject, nicknameProperty, []byte(h.lastName)); err != nil {
		return fmt.Errorf("failed to save nickname: %w", err)
	}
	return nil
}

// Submit 提交显示分数
// 上榜时返回名次（从 0 开始）并把该名次设为可编辑，否则返回 -1
func (h *HallOfFame) Submit(score int) int {
	h.editing = -1

	pos := -1
	for i, e := range h.entries {
		if score > e.Score {
			pos = i
			break
		}
	}
	if pos < 0 {
		return -1
	}

	copy(h.entries[pos+1:], h.entries[pos:len(h.entries)-1])
	h.entries[pos] = HallOfFameEntry{Name: h.lastName, Score: score}
	h.editing = pos

	if err := h.Save(); err != nil {
		log.Printf("[HallOfFame] Warning: %v", err)
	}
	log.Printf("[HallOfFame] New entry at #%d: %d (%s)", pos+1, score, h.lastName)
	return pos
}

// Rename 修改当前可编辑条目的名字，同时记为上次的名字
// 没有可编辑条目时返回 false
func (h *HallOfFame) Rename(name string) bool {
	if h.editing < 0 {
		return false
	}

	h.lastName = name
	h.entries[h.editing].Name = name

	if err := h.saveNickname(); err != nil {
		log.Printf("[HallOfFame] Warning: %v", err)
	}
	if err := h.Save(); err != nil {
		log.Printf("[HallOfFame] Warning: %v", err)
	}
	return true
}

// Type 把本帧的键盘输入应用到可编辑条目的名字上
// 先处理退格再追加字符，名字长度不设上限；名字有变化时立即保存并返回 true
func (h *HallOfFame) Type(chars []rune, backspace bool) bool {
	if h.editing < 0 || (len(chars) == 0 && !backspace) {
		return false
	}

	name := []rune(h.entries[h.editing].Name)
	if backspace && len(name) > 0 {
		name = name[:len(name)-1]
	}
	for _, c := range chars {
		if unicode.IsPrint(c) {
			name = append(name, c)
		}
	}

	if string(name) == h.entries[h.editing].Name {
		return false
	}
	return h.Rename(string(name))
}

// EditingIndex 当前可编辑的名次，-1 表示没有
func (h *HallOfFame) EditingIndex() int {
	return h.editing
}

// StopEditing 结束名字编辑（开始新一局时调用）
func (h *HallOfFame) StopEditing() {
	h.editing = -1
}

// LastName 上次使用的名字
func (h *HallOfFame) LastName() string {
	return h.lastName
}

// Entries 返回榜单副本
func (h *HallOfFame) Entries() []HallOfFameEntry {
	out := make([]HallOfFameEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
