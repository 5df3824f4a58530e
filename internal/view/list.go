package view

import (
	"fmt"
	"strings"

	"github.com/pokeview/pokeview/internal/catalog"
)

// List 是列表页的状态：分页列表、追加加载与搜索子模式。
// 列表请求（首屏/追加）与搜索请求各自跟踪最新令牌。
type List struct {
	seq sequence

	status      Status
	err         error
	records     []catalog.Record
	total       int
	hasMore     bool
	page        int
	loadingMore bool
	moreErr     error
	listToken   Token

	searching    bool
	term         string
	searchStatus Status
	searchErr    error
	results      []catalog.Record
	searchToken  Token
}

// NewList 返回处于 Idle 状态的列表视图。
func NewList() *List {
	return &List{}
}

// BeginLoad 从第一页重新加载，丢弃已加载的记录。
func (l *List) BeginLoad() Token {
	l.status = StatusLoading
	l.err = nil
	l.records = nil
	l.total = 0
	l.hasMore = false
	l.page = 0
	l.loadingMore = false
	l.moreErr = nil
	l.listToken = l.seq.next()
	return l.listToken
}

// ApplyPage 应用首屏结果；令牌过期时返回 false 且不修改状态。
func (l *List) ApplyPage(tok Token, result catalog.PageResult, err error) bool {
	if tok == 0 || tok != l.listToken {
		return false
	}
	l.listToken = 0
	if err != nil {
		l.status = StatusError
		l.err = err
		return true
	}
	l.status = StatusReady
	l.records = append([]catalog.Record(nil), result.Entries...)
	l.total = result.TotalCount
	l.hasMore = result.HasMore
	l.page = result.CurrentPage
	return true
}

// BeginLoadMore 请求下一页。列表未就绪、已在追加、没有更多或处于搜索模式时返回 false。
func (l *List) BeginLoadMore() (Token, bool) {
	if l.status != StatusReady || l.loadingMore || !l.hasMore || l.searching {
		return 0, false
	}
	l.loadingMore = true
	l.moreErr = nil
	l.listToken = l.seq.next()
	return l.listToken, true
}

// ApplyMore 追加下一页。失败时保留已加载记录并记录错误，可通过 Retry 重试。
func (l *List) ApplyMore(tok Token, result catalog.PageResult, err error) bool {
	if tok == 0 || tok != l.listToken || !l.loadingMore {
		return false
	}
	l.listToken = 0
	l.loadingMore = false
	if err != nil {
		l.moreErr = err
		return true
	}
	l.records = append(l.records, result.Entries...)
	l.total = result.TotalCount
	l.hasMore = result.HasMore
	l.page = result.CurrentPage
	return true
}

// BeginSearch 进入搜索模式并发起搜索；空白关键字等同于 ExitSearch。
func (l *List) BeginSearch(term string) (Token, bool) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		l.ExitSearch()
		return 0, false
	}
	l.searching = true
	l.term = trimmed
	l.searchStatus = StatusLoading
	l.searchErr = nil
	l.results = nil
	l.searchToken = l.seq.next()
	return l.searchToken, true
}

// ApplySearch 应用搜索结果；退出搜索后到达的结果会被丢弃。
func (l *List) ApplySearch(tok Token, records []catalog.Record, err error) bool {
	if tok == 0 || tok != l.searchToken || !l.searching {
		return false
	}
	l.searchToken = 0
	if err != nil {
		l.searchStatus = StatusError
		l.searchErr = err
		return true
	}
	l.searchStatus = StatusReady
	l.results = append([]catalog.Record(nil), records...)
	return true
}

// ExitSearch 回到分页列表，并使仍在途的搜索失效。
func (l *List) ExitSearch() {
	l.searching = false
	l.term = ""
	l.searchStatus = StatusIdle
	l.searchErr = nil
	l.results = nil
	l.searchToken = 0
}

// Retry 重新发起最近失败的请求，没有可重试的失败时返回 RequestNone。
func (l *List) Retry() (RequestKind, Token) {
	switch {
	case l.searching && l.searchStatus == StatusError:
		tok, _ := l.BeginSearch(l.term)
		return RequestSearch, tok
	case !l.searching && l.status == StatusError:
		return RequestPage, l.BeginLoad()
	case !l.searching && l.moreErr != nil:
		tok, ok := l.BeginLoadMore()
		if !ok {
			return RequestNone, 0
		}
		return RequestMore, tok
	default:
		return RequestNone, 0
	}
}

// Status 返回当前可见部分的状态：搜索模式下为搜索状态。
func (l *List) Status() Status {
	if l.searching {
		return l.searchStatus
	}
	return l.status
}

// Err 返回当前可见部分的错误。
func (l *List) Err() error {
	if l.searching {
		return l.searchErr
	}
	return l.err
}

// Records 返回当前可见的记录：搜索结果或已加载的分页记录。
func (l *List) Records() []catalog.Record {
	if l.searching {
		return l.results
	}
	return l.records
}

func (l *List) Total() int           { return l.total }
func (l *List) HasMore() bool        { return l.hasMore }
func (l *List) Page() int            { return l.page }
func (l *List) NextPage() int        { return l.page + 1 }
func (l *List) LoadingMore() bool    { return l.loadingMore }
func (l *List) MoreErr() error       { return l.moreErr }
func (l *List) Searching() bool      { return l.searching }
func (l *List) Term() string         { return l.term }
func (l *List) SearchStatus() Status { return l.searchStatus }

// Counter 返回 "Showing X of N" 计数；搜索模式下返回结果数量。
func (l *List) Counter() string {
	if l.searching {
		return fmt.Sprintf("%d results for %q", len(l.results), l.term)
	}
	return fmt.Sprintf("Showing %d of %d", len(l.records), l.total)
}
