package game

import "fmt"

// ScreenContent 覆盖层界面的文字内容，与具体前端无关
type ScreenContent struct {
	Title  string
	Lines  []string
	Footer string
	// Highlight 需要高亮的行（正在编辑名字的名次），-1 表示没有
	Highlight int
}

// 开始界面的操作说明
var startInstructions = []string{
	"Press any key to change direction",
	"Roll through the green rings to build your combo",
	"Dodge the trees, outrun the avalanche",
}

// BuildScreen 生成界面内容
//
// 结束界面列出排行榜：editing 对应的名次显示分数和带光标的名字，
// 其他有名字的条目显示 "分数 (名字)"，空位只显示名次。
func BuildScreen(kind ScreenKind, result Result, board []HallOfFameEntry, editing int) ScreenContent {
	switch kind {
	case ScreenPaused:
		return ScreenContent{Title: "Pause", Footer: "(click to resume)", Highlight: -1}
	case ScreenGameOver:
		c := ScreenContent{
			Title:     "Game Over",
			Footer:    "(click to play again)",
			Lines:     []string{fmt.Sprintf("Score: %d", result.Score), ""},
			Highlight: -1,
		}
		for i, e := range board {
			line := fmt.Sprintf("%d.", i+1)
			switch {
			case i == editing:
				line = fmt.Sprintf("%d. %d (%s_)", i+1, e.Score, e.Name)
				c.Highlight = len(c.Lines)
			case e.Name != "":
				line = fmt.Sprintf("%d. %d (%s)", i+1, e.Score, e.Name)
			}
			c.Lines = append(c.Lines, line)
		}
		return c
	default:
		lines := make([]string, len(startInstructions))
		copy(lines, startInstructions)
		return ScreenContent{Title: "A'valanche", Lines: lines, Footer: "(click to start)", Highlight: -1}
	}
}
