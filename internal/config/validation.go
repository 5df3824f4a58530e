package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if g.UpstreamTimeout.DurationValue() <= 0 {
		return newFieldError("Global.UpstreamTimeout", "必须大于 0")
	}
	if g.LogMaxSize < 0 {
		return newFieldError("Global.LogMaxSize", "不能为负数")
	}
	if g.LogMaxBackups < 0 {
		return newFieldError("Global.LogMaxBackups", "不能为负数")
	}

	cat := c.Catalog
	if err := validateBaseURL(cat.BaseURL); err != nil {
		return fmt.Errorf("%s: %w", catalogField("BaseURL"), err)
	}
	if cat.IndexLimit <= 0 {
		return newFieldError(catalogField("IndexLimit"), "必须大于 0")
	}
	if cat.PageSize <= 0 {
		return newFieldError(catalogField("PageSize"), "必须大于 0")
	}
	if cat.MaxPageSize < cat.PageSize {
		return newFieldError(catalogField("MaxPageSize"), "不能小于 PageSize")
	}
	if cat.SearchLimit <= 0 {
		return newFieldError(catalogField("SearchLimit"), "必须大于 0")
	}
	if cat.FetchConcurrency < 0 {
		return newFieldError(catalogField("FetchConcurrency"), "不能为负数")
	}

	return nil
}

func validateBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("不能为空")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("无法解析: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("仅支持 http/https")
	}
	if parsed.Host == "" {
		return errors.New("缺少 Host")
	}
	return nil
}
