package routes

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v3"

	"github.com/pokeview/pokeview/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"typeColor":   catalog.TypeColor,
	"statLabel":   catalog.StatLabel,
	"statColor":   catalog.StatColor,
	"statPercent": catalog.StatPercent,
}

// pages 在包初始化时解析，每个页面与 layout 组合为独立模板集。
var pages = map[string]*template.Template{
	"list":    parsePage("list.html"),
	"detail":  parsePage("detail.html"),
	"message": parsePage("message.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// pageData 是所有 HTML 页面共享的头部数据。
type pageData struct {
	Title string
	Query string
}

type listPage struct {
	pageData
	Searching bool
	Records   []catalog.Record
	Counter   string
	PrevPage  int
	NextPage  int
	HasMore   bool
	Error     string
	RetryURL  string
}

type detailPage struct {
	pageData
	Record catalog.Record
}

type messagePage struct {
	pageData
	Message  string
	RetryURL string
}

func renderHTML(c fiber.Ctx, status int, page string, data any) error {
	tmpl, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
