package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/catalog"
)

// DefaultIndexLimit 是拉取完整索引时声明的上限，远大于上游实际条目数。
const DefaultIndexLimit = 100000

// ErrSourceUnavailable 表示构造 Index 时未注入数据源。
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Index 负责缓存目录索引。首次调用 Entries 时回源一次并记住结果，
// 之后的调用直接返回内存中的序列，不再访问网络。
type Index struct {
	source catalog.Source
	limit  int
	logger *logrus.Logger

	// mu 在回源期间保持持有，保证并发的首次调用只触发一次上游请求。
	mu      sync.Mutex
	entries []catalog.Entry
	loaded  bool
	fetches int
}

// NewIndex 构造索引缓存；limit <= 0 时使用 DefaultIndexLimit。
func NewIndex(source catalog.Source, limit int, logger *logrus.Logger) *Index {
	if limit <= 0 {
		limit = DefaultIndexLimit
	}
	return &Index{
		source: source,
		limit:  limit,
		logger: logger,
	}
}

// Entries 返回完整索引。返回的切片由缓存持有，调用方只能读取。
// 回源失败时错误原样返回，缓存保持未填充状态。
func (i *Index) Entries(ctx context.Context) ([]catalog.Entry, error) {
	if i == nil || i.source == nil {
		return nil, ErrSourceUnavailable
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loaded {
		return i.entries, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	i.fetches++
	entries, err := i.source.FetchIndex(ctx, i.limit)
	if err != nil {
		i.log().WithError(err).WithFields(logrus.Fields{
			"action":     "index_load",
			"attempt":    i.fetches,
			"elapsed_ms": time.Since(started).Milliseconds(),
		}).Warn("index_load_failed")
		return nil, err
	}

	if entries == nil {
		entries = []catalog.Entry{}
	}
	i.entries = entries
	i.loaded = true

	i.log().WithFields(logrus.Fields{
		"action":     "index_load",
		"attempt":    i.fetches,
		"entries":    len(entries),
		"elapsed_ms": time.Since(started).Milliseconds(),
	}).Info("index_loaded")

	return i.entries, nil
}

// Loaded 表示索引是否已经成功填充。
func (i *Index) Loaded() bool {
	if i == nil {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.loaded
}

// Len 返回已缓存的条目数，未填充时为 0。
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.entries)
}

// Fetches 返回回源次数（含失败），用于诊断输出。
func (i *Index) Fetches() int {
	if i == nil {
		return 0
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.fetches
}

func (i *Index) log() *logrus.Logger {
	if i.logger != nil {
		return i.logger
	}
	return logrus.StandardLogger()
}
