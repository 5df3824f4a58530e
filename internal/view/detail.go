package view

import (
	"strings"

	"github.com/pokeview/pokeview/internal/catalog"
)

// Detail 是详情页的状态：Loading → Ready | NotFound。
type Detail struct {
	seq    sequence
	latest Token

	status Status
	ident  string
	record catalog.Record
	err    error
}

// NewDetail 返回处于 Idle 状态的详情视图。
func NewDetail() *Detail {
	return &Detail{}
}

// Begin 开始加载 ident 对应的详情，之前发出的请求全部失效。
func (d *Detail) Begin(ident string) Token {
	d.status = StatusLoading
	d.ident = strings.TrimSpace(ident)
	d.record = catalog.Record{}
	d.err = nil
	d.latest = d.seq.next()
	return d.latest
}

// Apply 应用详情结果；任何错误都进入 NotFound 并保留错误供展示。
func (d *Detail) Apply(tok Token, record catalog.Record, err error) bool {
	if tok == 0 || tok != d.latest {
		return false
	}
	d.latest = 0
	if err != nil {
		d.status = StatusNotFound
		d.err = err
		return true
	}
	d.status = StatusReady
	d.record = record
	if d.ident == "" {
		d.ident = record.Name
	}
	return true
}

// Reset 放弃当前详情，在途请求随之失效。
func (d *Detail) Reset() {
	d.status = StatusIdle
	d.ident = ""
	d.record = catalog.Record{}
	d.err = nil
	d.latest = 0
}

func (d *Detail) Status() Status         { return d.status }
func (d *Detail) Ident() string          { return d.ident }
func (d *Detail) Record() catalog.Record { return d.record }
func (d *Detail) Err() error             { return d.err }
