package routes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/catalog"
	"github.com/pokeview/pokeview/internal/server"
)

// Catalog 是路由依赖的目录读取能力，生产实现为 *dex.Service。
type Catalog interface {
	PageSize() int
	Page(ctx context.Context, pageNumber, pageSize int) (catalog.PageResult, error)
	Search(ctx context.Context, term string) ([]catalog.Record, error)
	Suggest(ctx context.Context, term string) ([]catalog.Entry, error)
	Detail(ctx context.Context, ident string) (catalog.Record, error)
	Random(ctx context.Context) (catalog.Record, error)
}

// RegisterCatalogRoutes 注册 HTML 列表/详情页与 /api JSON 接口。
func RegisterCatalogRoutes(app *fiber.App, svc Catalog, logger *logrus.Logger) {
	if app == nil || svc == nil {
		return
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := &catalogHandler{svc: svc, logger: logger}

	app.Get("/", h.listPage)
	app.Get("/pokemon/:id", h.detailPage)

	api := app.Group("/api")
	api.Get("/pokemon", h.apiList)
	api.Get("/pokemon/random", h.apiRandom)
	api.Get("/pokemon/:id", h.apiDetail)
	api.Get("/suggest", h.apiSuggest)
}

type catalogHandler struct {
	svc    Catalog
	logger *logrus.Logger
}

func (h *catalogHandler) listPage(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	data := listPage{pageData: pageData{Title: "Pokémon", Query: query}}

	if query != "" {
		data.Searching = true
		data.Title = fmt.Sprintf("Search %q", query)
		records, err := h.svc.Search(c.Context(), query)
		if err != nil {
			return h.listError(c, data, err)
		}
		data.Records = records
		data.Counter = fmt.Sprintf("%d results for %q", len(records), query)
		return renderHTML(c, fiber.StatusOK, "list", data)
	}

	pageNumber, err := queryInt(c, "page", 1)
	if err != nil {
		return h.listError(c, data, err)
	}
	result, err := h.svc.Page(c.Context(), pageNumber, h.svc.PageSize())
	if err != nil {
		return h.listError(c, data, err)
	}
	data.Records = result.Entries
	data.Counter = fmt.Sprintf("Showing %d of %d", len(result.Entries), result.TotalCount)
	data.HasMore = result.HasMore
	data.PrevPage = result.CurrentPage - 1
	data.NextPage = result.CurrentPage + 1
	return renderHTML(c, fiber.StatusOK, "list", data)
}

func (h *catalogHandler) listError(c fiber.Ctx, data listPage, err error) error {
	status, _ := server.ErrorStatus(err)
	server.LogError(c, h.logger, status, err)
	data.Error = userMessage(err)
	data.RetryURL = c.OriginalURL()
	return renderHTML(c, status, "list", data)
}

func (h *catalogHandler) detailPage(c fiber.Ctx) error {
	ident := c.Params("id")
	record, err := h.svc.Detail(c.Context(), ident)
	if err != nil {
		status, _ := server.ErrorStatus(err)
		server.LogError(c, h.logger, status, err)
		data := messagePage{
			pageData: pageData{Title: "Not found"},
			Message:  userMessage(err),
		}
		if status != fiber.StatusNotFound {
			data.Title = "Error"
			data.RetryURL = c.OriginalURL()
		}
		return renderHTML(c, status, "message", data)
	}
	return renderHTML(c, fiber.StatusOK, "detail", detailPage{
		pageData: pageData{Title: record.Name},
		Record:   record,
	})
}

func (h *catalogHandler) apiList(c fiber.Ctx) error {
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		records, err := h.svc.Search(c.Context(), query)
		if err != nil {
			return server.WriteError(c, h.logger, err)
		}
		return c.JSON(fiber.Map{
			"query":   query,
			"results": nonNil(records),
		})
	}

	pageNumber, err := queryInt(c, "page", 1)
	if err != nil {
		return server.WriteError(c, h.logger, err)
	}
	pageSize, err := queryInt(c, "size", h.svc.PageSize())
	if err != nil {
		return server.WriteError(c, h.logger, err)
	}
	result, err := h.svc.Page(c.Context(), pageNumber, pageSize)
	if err != nil {
		return server.WriteError(c, h.logger, err)
	}
	result.Entries = nonNil(result.Entries)
	return c.JSON(result)
}

func (h *catalogHandler) apiRandom(c fiber.Ctx) error {
	record, err := h.svc.Random(c.Context())
	if err != nil {
		return server.WriteError(c, h.logger, err)
	}
	return c.JSON(record)
}

func (h *catalogHandler) apiDetail(c fiber.Ctx) error {
	record, err := h.svc.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return server.WriteError(c, h.logger, err)
	}
	return c.JSON(record)
}

func (h *catalogHandler) apiSuggest(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.JSON(fiber.Map{"query": query, "suggestions": []string{}})
	}
	entries, err := h.svc.Suggest(c.Context(), query)
	if err != nil {
		return server.WriteError(c, h.logger, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return c.JSON(fiber.Map{
		"query":       query,
		"suggestions": names,
	})
}

// queryInt 解析整数查询参数，缺省时返回 def，非整数返回参数错误。
func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &catalog.InvalidArgumentError{Field: key, Reason: "must be an integer"}
	}
	return value, nil
}

// userMessage 返回面向页面的错误提示，上游错误不暴露内部地址。
func userMessage(err error) string {
	switch {
	case catalog.IsInvalidArgument(err):
		return err.Error()
	case errors.Is(err, catalog.ErrNotFound):
		return "Pokémon not found."
	case catalog.IsUpstreamError(err):
		return "Could not load Pokémon right now."
	default:
		return "Something went wrong."
	}
}

func nonNil(records []catalog.Record) []catalog.Record {
	if records == nil {
		return []catalog.Record{}
	}
	return records
}
