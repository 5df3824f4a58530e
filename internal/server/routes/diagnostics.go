package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/pokeview/pokeview/internal/version"
)

// IndexState 暴露索引缓存的加载状态，生产实现为 *cache.Index。
type IndexState interface {
	Loaded() bool
	Len() int
	Fetches() int
}

// Limits 暴露分页与搜索配置，生产实现为 *dex.Service。
type Limits interface {
	PageSize() int
	SearchLimit() int
}

// RegisterDiagnosticRoutes 暴露 /-/status 诊断接口，便于确认索引是否已加载。
func RegisterDiagnosticRoutes(app *fiber.App, index IndexState, limits Limits) {
	if app == nil || index == nil || limits == nil {
		return
	}

	app.Get("/-/status", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version": version.Full(),
			"index": fiber.Map{
				"loaded":  index.Loaded(),
				"size":    index.Len(),
				"fetches": index.Fetches(),
			},
			"page_size":    limits.PageSize(),
			"search_limit": limits.SearchLimit(),
		})
	})
}
