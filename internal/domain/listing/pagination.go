package listing

import (
	"strconv"
	"strings"
	"sync"
)

// ResolveMaxPage はページ送りのラベルから最終ページ番号を求めます
// 最後のラベルが currentMax 以下ならその値、それ以外（空・数値でない・上限超え）は
// currentMax をそのまま返します。最大ページが増えることはありません
func ResolveMaxPage(labels []string, currentMax int) int {
	if len(labels) == 0 {
		return currentMax
	}
	last, err := strconv.Atoi(strings.TrimSpace(labels[len(labels)-1]))
	if err != nil || last < 1 {
		return currentMax
	}
	if last <= currentMax {
		return last
	}
	return currentMax
}

// PageSet は [1, max] のページ範囲です。max は設定値から始まり、単調に減少します
// 複数ページの取得結果から同時に更新されるため排他制御します
type PageSet struct {
	mu  sync.Mutex
	max int
}

// NewPageSet は seed を上限とする PageSet を作成します
func NewPageSet(seed int) *PageSet {
	return &PageSet{max: seed}
}

// Max は現在の最終ページ番号を返します
func (s *PageSet) Max() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.max
}

// Observe はページ送りのラベルを反映し、更新後の最大値と値が下がったかどうかを返します
func (s *PageSet) Observe(labels []string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ResolveMaxPage(labels, s.max)
	lowered := next < s.max
	s.max = next
	return next, lowered
}
