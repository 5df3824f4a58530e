package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/catalog"
)

func TestRouterSetsRequestID(t *testing.T) {
	app := newTestApp(t)
	var seen string
	app.Get("/ping", func(c fiber.Ctx) error {
		seen = RequestID(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	reqID := resp.Header.Get("X-Request-ID")
	if reqID == "" || reqID != seen {
		t.Fatalf("expected X-Request-ID %q to match handler value %q", reqID, seen)
	}
}

func TestRouterUnknownPathReturnsJSON404(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`"not_found"`)) {
		t.Fatalf("expected not_found error, got %s", string(body))
	}
}

func TestRouterRecoversFromPanic(t *testing.T) {
	app := newTestApp(t)
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestNewAppValidatesOptions(t *testing.T) {
	if _, err := NewApp(AppOptions{ListenPort: 5000}); err == nil {
		t.Fatalf("missing logger should fail")
	}
	if _, err := NewApp(AppOptions{Logger: logrus.New()}); err == nil {
		t.Fatalf("missing port should fail")
	}
}

func TestErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"invalid", &catalog.InvalidArgumentError{Field: "page", Reason: "must be >= 1"}, 400, "invalid_argument"},
		{"not found", fmt.Errorf("detail: %w", catalog.ErrNotFound), 404, "not_found"},
		{"upstream 404", &catalog.FetchError{URL: "u", Status: 404}, 404, "not_found"},
		{"fetch", &catalog.FetchError{URL: "u", Status: 500}, 502, "upstream_failed"},
		{"parse", &catalog.ParseError{URL: "u", Reason: "malformed json"}, 502, "upstream_failed"},
		{"other", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, label := ErrorStatus(tc.err)
			if status != tc.status || label != tc.label {
				t.Fatalf("expected %d/%s, got %d/%s", tc.status, tc.label, status, label)
			}
		})
	}
}

func TestWriteErrorRendersJSON(t *testing.T) {
	app := newTestApp(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	app.Get("/fail", func(c fiber.Ctx) error {
		return WriteError(c, logger, &catalog.FetchError{URL: "u", Status: 503})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`"upstream_failed"`)) {
		t.Fatalf("expected upstream_failed, got %s", string(body))
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app, err := NewApp(AppOptions{
		Logger:     logger,
		ListenPort: 5000,
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return app
}
