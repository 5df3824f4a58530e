package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound 表示请求的条目在目录中不存在。
var ErrNotFound = errors.New("catalog entry not found")

// FetchError 表示网络/传输失败或上游返回非 2xx 状态。
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: upstream status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is 让上游 404 可以通过 errors.Is(err, ErrNotFound) 识别。
func (e *FetchError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ParseError 表示上游 JSON 无法解析或缺少必需字段。
type ParseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidArgumentError 表示调用方传入了非法的分页参数等。
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsUpstreamError 判断 err 是否属于上游错误（FetchError 或 ParseError），
// 两者对用户的呈现方式一致。
func IsUpstreamError(err error) bool {
	var fetchErr *FetchError
	var parseErr *ParseError
	return errors.As(err, &fetchErr) || errors.As(err, &parseErr)
}

// IsInvalidArgument 判断 err 是否为参数错误。
func IsInvalidArgument(err error) bool {
	var argErr *InvalidArgumentError
	return errors.As(err, &argErr)
}
