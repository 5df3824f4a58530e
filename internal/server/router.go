package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/logging"
)

// AppOptions controls how the Fiber application should behave on a specific port.
type AppOptions struct {
	Logger     *logrus.Logger
	ListenPort int
}

const contextKeyRequestID = "_pokeview_request_id"

// NewApp builds a Fiber application with request id, access log and
// structured error handling. Routes are registered by the caller.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		ErrorHandler:  errorHandler(opts.Logger),
	})

	app.Use(recover.New())
	app.Use(requestContextMiddleware())
	app.Use(accessLogMiddleware(opts.Logger))

	return app, nil
}

// requestContextMiddleware 为每个请求生成请求 ID 并回写 X-Request-ID。
func requestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

// accessLogMiddleware 在请求结束后输出一条访问日志，诊断接口降级为 debug。
func accessLogMiddleware(logger *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		if err != nil {
			// 先交给 ErrorHandler 写响应，日志才能拿到最终状态码。
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		path := string(c.Request().URI().Path())
		fields := logging.RequestFields(RequestID(c), c.Method(), path, c.Response().StatusCode(), time.Since(started))
		entry := logger.WithFields(fields)
		if isDiagnosticsPath(path) {
			entry.Debug("request_complete")
		} else {
			entry.Info("request_complete")
		}
		return nil
	}
}

// errorHandler 渲染未被路由处理的错误（未知路径、panic 等），统一输出 JSON。
func errorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		label := "internal_error"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			label = strings.ToLower(strings.ReplaceAll(http.StatusText(code), " ", "_"))
		}
		if code >= fiber.StatusInternalServerError {
			logger.WithFields(logrus.Fields{
				"action":     "request",
				"request_id": RequestID(c),
				"error":      err.Error(),
			}).Error("request_failed")
		}
		return c.Status(code).JSON(fiber.Map{"error": label})
	}
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}

func isDiagnosticsPath(path string) bool {
	return strings.HasPrefix(path, "/-/")
}
