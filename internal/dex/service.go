// Package dex implements the catalog read paths on top of the index cache:
// the Page Fetcher, the Search Filter (with autocomplete) and detail lookups.
// Detail records for a page or a search are fetched concurrently and joined
// all-or-nothing: a single failed fetch fails the whole call.
package dex

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pokeview/pokeview/internal/catalog"
)

const (
	// DefaultPageSize 是列表页每页条目数。
	DefaultPageSize = 21
	// DefaultSearchLimit 是搜索结果在拉取详情前的截断上限。
	DefaultSearchLimit = 10
	// DefaultMaxPageSize 是调用方可请求的最大每页条目数。
	DefaultMaxPageSize = 100
)

// IndexCache 是 Service 依赖的索引缓存能力，生产实现为 *cache.Index。
type IndexCache interface {
	Entries(ctx context.Context) ([]catalog.Entry, error)
}

// Options 控制分页/搜索策略与并发度。
type Options struct {
	PageSize    int
	SearchLimit int
	// MaxPageSize 限制 Page 接受的 pageSize，小于 PageSize 时按 PageSize 处理。
	MaxPageSize int
	// FetchConcurrency 限制单次请求内并行的详情拉取数量，0 表示不限制。
	FetchConcurrency int
	Logger           *logrus.Logger
	// IntN 用于随机挑选条目，测试可注入确定性实现。
	IntN func(n int) int
}

// Service 组合索引缓存与上游数据源，对外提供分页、搜索与详情查询。
type Service struct {
	index       IndexCache
	source      catalog.Source
	pageSize    int
	maxPageSize int
	searchLimit int
	concurrency int
	logger      *logrus.Logger
	intN        func(n int) int
}

// NewService 构造 Service，index 与 source 均不能为空。
func NewService(index IndexCache, source catalog.Source, opts Options) (*Service, error) {
	if index == nil {
		return nil, errors.New("index cache is required")
	}
	if source == nil {
		return nil, errors.New("catalog source is required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = DefaultMaxPageSize
	}
	if opts.MaxPageSize < opts.PageSize {
		opts.MaxPageSize = opts.PageSize
	}
	if opts.FetchConcurrency < 0 {
		opts.FetchConcurrency = 0
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}

	return &Service{
		index:       index,
		source:      source,
		pageSize:    opts.PageSize,
		maxPageSize: opts.MaxPageSize,
		searchLimit: opts.SearchLimit,
		concurrency: opts.FetchConcurrency,
		logger:      opts.Logger,
		intN:        opts.IntN,
	}, nil
}

// PageSize 返回配置的默认每页条目数。
func (s *Service) PageSize() int {
	return s.pageSize
}

// MaxPageSize 返回 Page 接受的最大每页条目数。
func (s *Service) MaxPageSize() int {
	return s.maxPageSize
}

// SearchLimit 返回配置的搜索截断上限。
func (s *Service) SearchLimit() int {
	return s.searchLimit
}

// Page 返回第 pageNumber 页（从 1 开始）的详情记录及分页元数据。
// 超出索引范围的页返回空列表且 HasMore=false。
func (s *Service) Page(ctx context.Context, pageNumber, pageSize int) (catalog.PageResult, error) {
	if pageNumber < 1 {
		return catalog.PageResult{}, &catalog.InvalidArgumentError{Field: "page", Reason: "must be >= 1"}
	}
	if pageSize <= 0 {
		return catalog.PageResult{}, &catalog.InvalidArgumentError{Field: "size", Reason: "must be > 0"}
	}
	if pageSize > s.maxPageSize {
		return catalog.PageResult{}, &catalog.InvalidArgumentError{
			Field:  "size",
			Reason: fmt.Sprintf("must be <= %d", s.maxPageSize),
		}
	}

	entries, err := s.index.Entries(ctx)
	if err != nil {
		return catalog.PageResult{}, err
	}

	started := time.Now()
	start, end := Bounds(len(entries), pageNumber, pageSize)
	records, err := s.hydrate(ctx, entries[start:end])
	if err != nil {
		return catalog.PageResult{}, err
	}

	// end 仅在触及索引末尾时被截断，因此 end < total 即表示还有下一页。
	result := catalog.PageResult{
		Entries:     records,
		TotalCount:  len(entries),
		HasMore:     end < len(entries),
		CurrentPage: pageNumber,
	}

	s.logger.WithFields(logrus.Fields{
		"action":     "page",
		"page":       pageNumber,
		"size":       pageSize,
		"returned":   len(records),
		"total":      result.TotalCount,
		"has_more":   result.HasMore,
		"elapsed_ms": time.Since(started).Milliseconds(),
	}).Debug("page_hydrated")

	return result, nil
}

// Search 对索引名称做大小写不敏感的子串匹配，保持索引顺序，
// 截断到 SearchLimit 后并发拉取详情。无匹配时返回空切片。
func (s *Service) Search(ctx context.Context, term string) ([]catalog.Record, error) {
	matches, err := s.Suggest(ctx, term)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	records, err := s.hydrate(ctx, matches)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"action":     "search",
		"term":       term,
		"matches":    len(records),
		"elapsed_ms": time.Since(started).Milliseconds(),
	}).Debug("search_hydrated")

	return records, nil
}

// Suggest 返回与 Search 相同的匹配条目但不拉取详情，供自动补全使用。
func (s *Service) Suggest(ctx context.Context, term string) ([]catalog.Entry, error) {
	entries, err := s.index.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(entries, term, s.searchLimit), nil
}

// Detail 按编号或名称获取单条详情；空标识、非法标识或上游 404 返回 catalog.ErrNotFound。
func (s *Service) Detail(ctx context.Context, ident string) (catalog.Record, error) {
	normalized := strings.ToLower(strings.TrimSpace(ident))
	if !isSlug(normalized) {
		return catalog.Record{}, fmt.Errorf("%q: %w", ident, catalog.ErrNotFound)
	}
	record, err := s.source.FetchRecord(ctx, s.source.Locate(normalized))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Record{}, fmt.Errorf("%s: %w", normalized, catalog.ErrNotFound)
		}
		return catalog.Record{}, err
	}
	return record, nil
}

// Random 从索引中均匀随机挑选一条并返回其详情。
func (s *Service) Random(ctx context.Context) (catalog.Record, error) {
	entries, err := s.index.Entries(ctx)
	if err != nil {
		return catalog.Record{}, err
	}
	if len(entries) == 0 {
		return catalog.Record{}, catalog.ErrNotFound
	}
	entry := entries[s.intN(len(entries))]
	return s.source.FetchRecord(ctx, entry.Locator)
}

// isSlug 报告 ident 是否只由小写字母、数字与连字符组成，
// 避免 ".." 之类的标识拼出指向其他资源的上游路径。
func isSlug(ident string) bool {
	if ident == "" {
		return false
	}
	for _, r := range ident {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// hydrate 为每个条目并发拉取详情，全部成功才返回；结果顺序与输入一致。
// 任一失败时 errgroup 取消其余请求，已拿到的部分结果被丢弃。
func (s *Service) hydrate(ctx context.Context, entries []catalog.Entry) ([]catalog.Record, error) {
	records := make([]catalog.Record, len(entries))
	if len(entries) == 0 {
		return records, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, entry := range entries {
		g.Go(func() error {
			record, err := s.source.FetchRecord(gctx, entry.Locator)
			if err != nil {
				return fmt.Errorf("hydrate %s: %w", entry.Name, err)
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
