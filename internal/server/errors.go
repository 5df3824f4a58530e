package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/catalog"
)

// ErrorStatus 将目录错误映射为 HTTP 状态码与错误标签：
// 参数错误 400，条目不存在 404，上游拉取/解析失败统一 502。
func ErrorStatus(err error) (int, string) {
	switch {
	case err == nil:
		return fiber.StatusOK, ""
	case catalog.IsInvalidArgument(err):
		return fiber.StatusBadRequest, "invalid_argument"
	case errors.Is(err, catalog.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case catalog.IsUpstreamError(err):
		return fiber.StatusBadGateway, "upstream_failed"
	default:
		return fiber.StatusInternalServerError, "internal_error"
	}
}

// WriteError 以 JSON 形式输出错误；5xx 记录 warn 日志，其余记录 debug。
func WriteError(c fiber.Ctx, logger *logrus.Logger, err error) error {
	status, label := ErrorStatus(err)
	LogError(c, logger, status, err)
	return c.Status(status).JSON(fiber.Map{
		"error":   label,
		"message": err.Error(),
	})
}

// LogError 输出一条携带请求 ID 与错误信息的日志，HTML 路由也复用它。
func LogError(c fiber.Ctx, logger *logrus.Logger, status int, err error) {
	if logger == nil || err == nil {
		return
	}
	entry := logger.WithFields(logrus.Fields{
		"action":     "request",
		"request_id": RequestID(c),
		"path":       c.Path(),
		"status":     status,
		"error":      err.Error(),
	})
	if status >= fiber.StatusInternalServerError {
		entry.Warn("request_error")
		return
	}
	entry.Debug("request_error")
}
