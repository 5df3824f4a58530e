package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxStatValue 是属性条满格对应的数值，超出部分按满格展示。
const MaxStatValue = 150

// Entry 是目录索引中的一条轻量记录（名称 + 详情定位地址）。
type Entry struct {
	Name       string `json:"name"`
	Locator    string `json:"locator"`
	SequenceID int    `json:"id"`
}

// Stat 描述单个具名数值属性，例如 hp=35。
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Record 是一条完整的详情记录，由单次详情请求构建，归请求方独占。
type Record struct {
	SequenceID int      `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"image_url"`
	Types      []string `json:"types"`
	Stats      []Stat   `json:"stats"`
	Height     int      `json:"height"`
	Weight     int      `json:"weight"`
}

// PageResult 是一次分页请求的结果，每次请求重新计算。
type PageResult struct {
	Entries     []Record `json:"entries"`
	TotalCount  int      `json:"total_count"`
	HasMore     bool     `json:"has_more"`
	CurrentPage int      `json:"current_page"`
}

// Source 抽象上游目录数据源，生产实现位于 internal/upstream，测试可注入桩。
type Source interface {
	// FetchIndex 一次性拉取完整索引，limit 为声明的上限。
	FetchIndex(ctx context.Context, limit int) ([]Entry, error)
	// FetchRecord 按 locator 拉取单条详情。
	FetchRecord(ctx context.Context, locator string) (Record, error)
	// Locate 将编号或名称转换为详情 locator。
	Locate(ident string) string
}

// SequenceIDFromLocator 从 locator 的最后一个非空路径段解析编号，
// 例如 https://pokeapi.co/api/v2/pokemon/25/ → 25。
func SequenceIDFromLocator(locator string) (int, error) {
	raw := strings.TrimSpace(locator)
	if raw == "" {
		return 0, fmt.Errorf("empty locator")
	}
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.TrimRight(path, "/")
	idx := strings.LastIndex(path, "/")
	segment := path[idx+1:]
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("locator %q has no numeric id", locator)
	}
	if id <= 0 {
		return 0, fmt.Errorf("locator %q has non-positive id %d", locator, id)
	}
	return id, nil
}

// Number 返回四位补零的展示编号，例如 #0025。
func (r Record) Number() string {
	return fmt.Sprintf("#%04d", r.SequenceID)
}

// HeightMeters 将上游的分米单位换算为米。
func (r Record) HeightMeters() float64 {
	return float64(r.Height) / 10
}

// WeightKilograms 将上游的百克单位换算为千克。
func (r Record) WeightKilograms() float64 {
	return float64(r.Weight) / 10
}

// TotalStats 返回全部属性值之和。
func (r Record) TotalStats() int {
	total := 0
	for _, s := range r.Stats {
		total += s.Value
	}
	return total
}

// StatPercent 返回属性条的填充百分比（0-100）。
func StatPercent(value int) int {
	if value <= 0 {
		return 0
	}
	pct := value * 100 / MaxStatValue
	if pct > 100 {
		return 100
	}
	return pct
}
