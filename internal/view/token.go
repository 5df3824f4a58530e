package view

// Token 标识一次发出的请求；同一视图内单调递增，0 表示无效。
type Token uint64

// Status 是视图的加载状态。
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// RequestKind 指明 Retry 重新发起的是哪类请求。
type RequestKind int

const (
	RequestNone RequestKind = iota
	RequestPage
	RequestMore
	RequestSearch
)

type sequence struct {
	last Token
}

func (s *sequence) next() Token {
	s.last++
	return s.last
}
