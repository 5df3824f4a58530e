// Package upstream implements catalog.Source against the public PokeAPI
// JSON-over-HTTP endpoints: the bulk index listing and the per-item detail
// resource. Transport failures and non-2xx answers become catalog.FetchError,
// malformed payloads become catalog.ParseError.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/catalog"
	"github.com/pokeview/pokeview/internal/logging"
	"github.com/pokeview/pokeview/internal/version"
)

// DefaultBaseURL 是公共 PokeAPI v2 的根地址。
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// maxBodyBytes 限制单个响应体大小，完整索引约 100KB，详情约 300KB。
const maxBodyBytes = 16 << 20

// Client 通过共享 http.Client 访问上游目录 API。
type Client struct {
	http      *http.Client
	base      *url.URL
	logger    *logrus.Logger
	userAgent string
}

var _ catalog.Source = (*Client)(nil)

// NewClient 构造上游客户端，baseURL 为空时使用 DefaultBaseURL。
func NewClient(httpClient *http.Client, baseURL string, logger *logrus.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, errors.New("http client is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url scheme: %q", parsed.Scheme)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		http:      httpClient,
		base:      parsed,
		logger:    logger,
		userAgent: "pokeview/" + version.Version,
	}, nil
}

// FetchIndex 拉取完整索引：GET {base}/pokemon?limit={limit}&offset=0。
func (c *Client) FetchIndex(ctx context.Context, limit int) ([]catalog.Entry, error) {
	target := c.endpoint("pokemon")
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", "0")
	target.RawQuery = query.Encode()

	var payload indexPayload
	if err := c.getJSON(ctx, target.String(), &payload); err != nil {
		return nil, err
	}
	return payload.entries(target.String())
}

// FetchRecord 拉取 locator 指向的详情资源。相对 locator 基于 base 解析。
func (c *Client) FetchRecord(ctx context.Context, locator string) (catalog.Record, error) {
	target := c.resolve(locator)

	var payload recordPayload
	if err := c.getJSON(ctx, target, &payload); err != nil {
		return catalog.Record{}, err
	}
	return payload.record(target)
}

// Locate 将编号或名称转换为详情 locator：{base}/pokemon/{ident}/。
func (c *Client) Locate(ident string) string {
	return c.endpoint("pokemon", strings.ReplaceAll(ident, "/", "")).String() + "/"
}

func (c *Client) endpoint(segments ...string) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = ""
	return &u
}

func (c *Client) resolve(locator string) string {
	ref, err := url.Parse(strings.TrimSpace(locator))
	if err != nil || ref.IsAbs() {
		return locator
	}
	return c.base.ResolveReference(ref).String()
}

// getJSON 执行 GET 请求并把 JSON 解码进 out；任何阶段失败都会输出一条结构化日志。
func (c *Client) getJSON(ctx context.Context, target string, out any) (err error) {
	started := time.Now()
	status := 0
	defer func() {
		c.logResult(target, status, started, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return &catalog.FetchError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &catalog.FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &catalog.FetchError{URL: target, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &catalog.FetchError{URL: target, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &catalog.ParseError{URL: target, Reason: "malformed json", Err: err}
	}
	return nil
}

func (c *Client) logResult(target string, status int, started time.Time, err error) {
	fields := logging.UpstreamFields(target, status, time.Since(started))
	if err != nil {
		fields["error"] = err.Error()
		c.logger.WithFields(fields).Warn("upstream_failed")
		return
	}
	c.logger.WithFields(fields).Debug("upstream_complete")
}
