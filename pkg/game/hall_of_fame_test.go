package game

import (
	"reflect"
	"testing"
)

func scoresOf(entries []HallOfFameEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestHallOfFameSubmit(t *testing.T) {
	h := NewHallOfFame(nil)

	tests := []struct {
		score    int
		wantRank int
		want     []int
	}{
		{50, 0, []int{50, 0, 0, 0, 0}},
		{30, 1, []int{50, 30, 0, 0, 0}},
		{70, 0, []int{70, 50, 30, 0, 0}},
		{50, 2, []int{70, 50, 50, 30, 0}}, // 相同分数排在后面
		{10, 4, []int{70, 50, 50, 30, 10}},
		{5, -1, []int{70, 50, 50, 30, 10}}, // 未上榜
		{0, -1, []int{70, 50, 50, 30, 10}},
		{60, 1, []int{70, 60, 50, 50, 30}}, // 最后一名被挤掉
	}

	for _, tt := range tests {
		rank := h.Submit(tt.score)
		if rank != tt.wantRank {
			t.Errorf("Submit(%d) rank = %d, want %d", tt.score, rank, tt.wantRank)
		}
		if got := scoresOf(h.Entries()); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("after Submit(%d): %v, want %v", tt.score, got, tt.want)
		}
		if h.EditingIndex() != tt.wantRank {
			t.Errorf("after Submit(%d): editing %d, want %d", tt.score, h.EditingIndex(), tt.wantRank)
		}
	}
}

func TestHallOfFameZeroScoreOnEmptyBoard(t *testing.T) {
	h := NewHallOfFame(nil)

	if rank := h.Submit(0); rank != -1 {
		t.Errorf("a zero score must not enter an empty board, got rank %d", rank)
	}
}

func TestHallOfFameRename(t *testing.T) {
	h := NewHallOfFame(nil)

	if h.Rename("ZED") {
		t.Error("Rename without an editable entry should fail")
	}

	h.Submit(40)
	if got := h.Entries()[0].Name; got != DefaultNickname {
		t.Errorf("new entry should use %q, got %q", DefaultNickname, got)
	}

	if !h.Rename("ZED") {
		t.Fatal("Rename should succeed right after entering the board")
	}
	if got := h.Entries()[0].Name; got != "ZED" {
		t.Errorf("entry name = %q, want ZED", got)
	}
	if h.LastName() != "ZED" {
		t.Errorf("LastName = %q, want ZED", h.LastName())
	}

	// 下一次上榜沿用新名字
	h.Submit(20)
	if got := h.Entries()[1].Name; got != "ZED" {
		t.Errorf("next entry should reuse the last name, got %q", got)
	}

	h.StopEditing()
	if h.Rename("AAA") {
		t.Error("Rename after StopEditing should fail")
	}
}

func TestHallOfFameType(t *testing.T) {
	h := NewHallOfFame(nil)

	if h.Type([]rune("X"), false) {
		t.Error("Type without an editable entry should do nothing")
	}

	h.Submit(40)

	tests := []struct {
		name      string
		chars     string
		backspace bool
		changed   bool
		want      string
	}{
		{"退格", "", true, true, "MO"},
		{"追加", "NA", false, true, "MONA"},
		{"退格后追加", "E", true, true, "MONE"},
		{"无输入", "", false, false, "MONE"},
		{"控制字符被忽略", "\t", false, false, "MONE"},
		{"不限长度", "ABCDEFGHIJKLMNOP", false, true, "MONEABCDEFGHIJKLMNOP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Type([]rune(tt.chars), tt.backspace); got != tt.changed {
				t.Errorf("Type() = %v, want %v", got, tt.changed)
			}
			if got := h.Entries()[0].Name; got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
			if h.LastName() != tt.want {
				t.Errorf("LastName = %q, want %q", h.LastName(), tt.want)
			}
		})
	}

	// 名字可以删空
	for i := 0; i < 30; i++ {
		h.Type(nil, true)
	}
	if got := h.Entries()[0].Name; got != "" {
		t.Errorf("name after clearing = %q, want empty", got)
	}
}

func TestHallOfFamePersistence(t *testing.T) {
	gdataManager := openTestGdata(t, "test_hall_of_fame")

	h1 := NewHallOfFame(gdataManager)
	h1.Submit(120)
	h1.Rename("ANA")
	h1.Submit(80)

	h2 := NewHallOfFame(gdataManager)
	if got := scoresOf(h2.Entries()); !reflect.DeepEqual(got, []int{120, 80, 0, 0, 0}) {
		t.Errorf("reloaded scores %v", got)
	}
	if h2.Entries()[0].Name != "ANA" || h2.Entries()[1].Name != "ANA" {
		t.Errorf("reloaded names %+v", h2.Entries())
	}
	if h2.LastName() != "ANA" {
		t.Errorf("reloaded last name %q, want ANA", h2.LastName())
	}
	if h2.EditingIndex() != -1 {
		t.Error("editing state must not persist")
	}
}

func TestHallOfFameEntriesIsCopy(t *testing.T) {
	h := NewHallOfFame(nil)
	h.Submit(10)

	entries := h.Entries()
	entries[0].Score = 999

	if h.Entries()[0].Score != 10 {
		t.Error("Entries should return a copy")
	}
}

func TestGameStateDegraded(t *testing.T) {
	gs := NewGameStateWithManager(nil)

	if gs.GetGdataManager() != nil {
		t.Error("expected nil gdata manager")
	}
	if gs.GetSettingsManager() == nil || gs.GetHallOfFame() == nil {
		t.Fatal("stores must exist in degraded mode")
	}
	if err := gs.SaveAll(); err != nil {
		t.Errorf("SaveAll in degraded mode: %v", err)
	}
}

func TestGameStateOpen(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	gs := NewGameState("test_game_state")
	gs.GetHallOfFame().Submit(42)
	if err := gs.SaveAll(); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	again := NewGameState("test_game_state")
	if got := again.GetHallOfFame().Entries()[0].Score; got != 42 {
		t.Errorf("reloaded top score %d, want 42", got)
	}
}
