package dex

import (
	"strings"

	"github.com/pokeview/pokeview/internal/catalog"
)

// Bounds 计算分页切片的 [start, end) 区间，并截断到 total 范围内。
// 只用除法判断越界，超大的 pageNumber/pageSize 不会溢出。
func Bounds(total, pageNumber, pageSize int) (int, int) {
	if total <= 0 || pageNumber < 1 || pageSize <= 0 {
		return 0, 0
	}
	if pageNumber-1 > (total-1)/pageSize {
		return total, total
	}
	start := (pageNumber - 1) * pageSize
	if pageSize >= total-start {
		return start, total
	}
	return start, start + pageSize
}

// Filter 返回名称包含 term（忽略大小写）的条目，保持索引顺序，最多 limit 条。
// limit <= 0 表示不截断。空 term 匹配全部条目，是否进入搜索模式由调用方决定。
func Filter(entries []catalog.Entry, term string, limit int) []catalog.Entry {
	needle := strings.ToLower(term)
	matches := make([]catalog.Entry, 0)
	for _, entry := range entries {
		if !strings.Contains(strings.ToLower(entry.Name), needle) {
			continue
		}
		matches = append(matches, entry)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

// IsBlankTerm 报告 term 是否为空或仅含空白，视图层以此表示“退出搜索模式”。
func IsBlankTerm(term string) bool {
	return strings.TrimSpace(term) == ""
}
