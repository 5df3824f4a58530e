package logging

import (
	"time"

	"github.com/sirupsen/logrus"
)

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// UpstreamFields 提供单次上游请求的 url/状态/耗时字段。
func UpstreamFields(upstream string, status int, elapsed time.Duration) logrus.Fields {
	return logrus.Fields{
		"action":          "upstream",
		"upstream":        upstream,
		"upstream_status": status,
		"elapsed_ms":      elapsed.Milliseconds(),
	}
}

// RequestFields 提供 HTTP 访问日志字段，供 server 中间件复用。
func RequestFields(requestID, method, path string, status int, elapsed time.Duration) logrus.Fields {
	fields := logrus.Fields{
		"action":     "request",
		"method":     method,
		"path":       path,
		"status":     status,
		"elapsed_ms": elapsed.Milliseconds(),
	}
	if requestID != "" {
		fields["request_id"] = requestID
	}
	return fields
}
