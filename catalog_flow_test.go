package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/catalog"
	"github.com/pokeview/pokeview/internal/config"
	"github.com/pokeview/pokeview/internal/server"
	"github.com/pokeview/pokeview/internal/server/routes"
)

// catalogStub 模拟 PokeAPI 的索引与详情接口，并记录每次请求路径。
type catalogStub struct {
	server *http.Server
	URL    string

	mu       sync.Mutex
	requests []string
	total    int
	broken   map[int]bool
}

func newCatalogStub(t *testing.T, total int) *catalogStub {
	t.Helper()

	stub := &catalogStub{total: total, broken: map[int]bool{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/pokemon", stub.handleIndex)
	mux.HandleFunc("/api/v2/pokemon/", stub.handleDetail)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start upstream stub listener: %v", err)
	}
	stub.server = &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.requests = append(stub.requests, r.URL.Path)
		stub.mu.Unlock()
		mux.ServeHTTP(w, r)
	})}
	stub.URL = "http://" + listener.Addr().String()

	go func() {
		_ = stub.server.Serve(listener)
	}()
	t.Cleanup(func() { _ = stub.server.Close() })
	return stub
}

func (s *catalogStub) handleIndex(w http.ResponseWriter, r *http.Request) {
	results := make([]map[string]string, 0, s.total)
	for i := 1; i <= s.total; i++ {
		results = append(results, map[string]string{
			"name": fmt.Sprintf("mon-%02d", i),
			"url":  fmt.Sprintf("%s/api/v2/pokemon/%d/", s.URL, i),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"count": s.total, "results": results})
}

func (s *catalogStub) handleDetail(w http.ResponseWriter, r *http.Request) {
	var id int
	if _, err := fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/api/v2/pokemon/"), "%d", &id); err != nil || id < 1 || id > s.total {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	broken := s.broken[id]
	s.mu.Unlock()
	if broken {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     id,
		"name":   fmt.Sprintf("mon-%02d", id),
		"height": 10,
		"weight": 100,
		"types":  []map[string]any{{"slot": 1, "type": map[string]string{"name": "fire"}}},
		"stats":  []map[string]any{{"base_stat": 50, "stat": map[string]string{"name": "hp"}}},
	})
}

func (s *catalogStub) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.requests {
		if p == path {
			n++
		}
	}
	return n
}

func newCatalogFlowApp(t *testing.T, stub *catalogStub) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Global: config.GlobalConfig{
			ListenPort:      5000,
			UpstreamTimeout: config.Duration(5 * time.Second),
		},
		Catalog: config.CatalogConfig{
			BaseURL:     stub.URL + "/api/v2",
			IndexLimit:  100000,
			PageSize:    21,
			SearchLimit: 10,
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	index, svc, err := buildCatalog(cfg, logger)
	if err != nil {
		t.Fatalf("buildCatalog failed: %v", err)
	}
	app, err := server.NewApp(server.AppOptions{Logger: logger, ListenPort: cfg.Global.ListenPort})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	routes.RegisterDiagnosticRoutes(app, index, svc)
	routes.RegisterCatalogRoutes(app, svc, logger)
	return app
}

func getJSON(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return resp.StatusCode
}

func TestCatalogFlowPagesFromSingleIndexFetch(t *testing.T) {
	stub := newCatalogStub(t, 25)
	app := newCatalogFlowApp(t, stub)

	var first catalog.PageResult
	if status := getJSON(t, app, "/api/pokemon?page=1", &first); status != fiber.StatusOK {
		t.Fatalf("page 1 status %d", status)
	}
	if len(first.Entries) != 21 || !first.HasMore || first.TotalCount != 25 {
		t.Fatalf("unexpected page 1: %d entries, hasMore=%v", len(first.Entries), first.HasMore)
	}
	if first.Entries[0].Name != "mon-01" || first.Entries[20].Name != "mon-21" {
		t.Fatalf("page order should follow the index")
	}

	var second catalog.PageResult
	getJSON(t, app, "/api/pokemon?page=2", &second)
	if len(second.Entries) != 4 || second.HasMore {
		t.Fatalf("unexpected page 2: %d entries, hasMore=%v", len(second.Entries), second.HasMore)
	}

	var search struct {
		Results []catalog.Record `json:"results"`
	}
	getJSON(t, app, "/api/pokemon?q=MON-1", &search)
	if len(search.Results) != 10 {
		t.Fatalf("search should be capped at 10, got %d", len(search.Results))
	}

	if n := stub.count("/api/v2/pokemon"); n != 1 {
		t.Fatalf("index should be fetched once, got %d", n)
	}

	var status struct {
		Index struct {
			Loaded bool `json:"loaded"`
			Size   int  `json:"size"`
		} `json:"index"`
	}
	getJSON(t, app, "/-/status", &status)
	if !status.Index.Loaded || status.Index.Size != 25 {
		t.Fatalf("status should report a loaded index of 25, got %+v", status.Index)
	}
}

func TestCatalogFlowFailedDetailFailsWholePage(t *testing.T) {
	stub := newCatalogStub(t, 25)
	stub.broken[7] = true
	app := newCatalogFlowApp(t, stub)

	var payload map[string]any
	if status := getJSON(t, app, "/api/pokemon?page=1", &payload); status != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if payload["error"] != "upstream_failed" {
		t.Fatalf("expected upstream_failed, got %v", payload["error"])
	}
	if _, partial := payload["entries"]; partial {
		t.Fatalf("failed page must not carry partial entries")
	}

	var second catalog.PageResult
	if status := getJSON(t, app, "/api/pokemon?page=2", &second); status != fiber.StatusOK {
		t.Fatalf("page without the broken record should load, got %d", status)
	}
}

func TestCatalogFlowDetailNotFound(t *testing.T) {
	stub := newCatalogStub(t, 3)
	app := newCatalogFlowApp(t, stub)

	var record catalog.Record
	if status := getJSON(t, app, "/api/pokemon/2", &record); status != fiber.StatusOK || record.Name != "mon-02" {
		t.Fatalf("unexpected detail %d %+v", status, record)
	}

	var payload map[string]any
	if status := getJSON(t, app, "/api/pokemon/99", &payload); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestCatalogFlowRejectsOversizedPage(t *testing.T) {
	stub := newCatalogStub(t, 25)
	app := newCatalogFlowApp(t, stub)

	var payload map[string]any
	if status := getJSON(t, app, "/api/pokemon?page=1&size=100000", &payload); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if payload["error"] != "invalid_argument" {
		t.Fatalf("expected invalid_argument, got %v", payload["error"])
	}
	if status := getJSON(t, app, "/api/pokemon?page=2&size=9223372036854775807", nil); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for max int size, got %d", status)
	}
	if n := stub.count("/api/v2/pokemon"); n != 0 {
		t.Fatalf("rejected sizes must not load the index, got %d fetches", n)
	}
}

func TestCatalogFlowHugePageIsEmpty(t *testing.T) {
	stub := newCatalogStub(t, 25)
	app := newCatalogFlowApp(t, stub)

	var page catalog.PageResult
	if status := getJSON(t, app, "/api/pokemon?page=9223372036854775807", &page); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(page.Entries) != 0 || page.HasMore || page.TotalCount != 25 {
		t.Fatalf("expected an empty final page, got %d entries hasMore=%v", len(page.Entries), page.HasMore)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807", nil), fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("HTML listing should render an empty page, got %d", resp.StatusCode)
	}
}

func TestCatalogFlowDetailRejectsNonSlugIdent(t *testing.T) {
	stub := newCatalogStub(t, 3)
	app := newCatalogFlowApp(t, stub)

	var payload map[string]any
	if status := getJSON(t, app, "/api/pokemon/mon.02", &payload); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if payload["error"] != "not_found" {
		t.Fatalf("expected not_found, got %v", payload["error"])
	}

	stub.mu.Lock()
	requests := len(stub.requests)
	stub.mu.Unlock()
	if requests != 0 {
		t.Fatalf("invalid ident must not reach upstream, got %d requests", requests)
	}
}
