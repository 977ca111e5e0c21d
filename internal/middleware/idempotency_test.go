package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/viet-pay/viet_pay/internal/logging"
)

func setupIdempotencyApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var calls atomic.Int64
	app.Post("/wallets/:userId/adjust", func(c *fiber.Ctx) error {
		calls.Add(1)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"balance": 1050})
	})
	app.Get("/wallets/:userId", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &calls, cleanup
}

func postAdjust(t *testing.T, app *fiber.App, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/wallets/user-1/adjust", strings.NewReader(`{"delta":"10.50"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyRequiresHeaderForMutations(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	status, _ := postAdjust(t, app, "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, status)
	}
	if calls.Load() != 0 {
		t.Fatalf("handler must not run without a key, ran %d times", calls.Load())
	}
}

func TestIdempotencySkipsReads(t *testing.T) {
	app, _, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodGet, "/wallets/user-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET without key should pass, got %d", resp.StatusCode)
	}
}

func TestIdempotencyReplaysResponse(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	status, body := postAdjust(t, app, "adjust-1")
	if status != fiber.StatusOK {
		t.Fatalf("first request: expected %d got %d", fiber.StatusOK, status)
	}

	status2, body2 := postAdjust(t, app, "adjust-1")
	if status2 != status {
		t.Fatalf("replay status mismatch: %d vs %d", status2, status)
	}
	if body2 != body {
		t.Fatalf("replay body mismatch: %q vs %q", body2, body)
	}
	if calls.Load() != 1 {
		t.Fatalf("handler must run exactly once, ran %d times", calls.Load())
	}
}

func TestIdempotencyDistinctKeys(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	postAdjust(t, app, "adjust-1")
	postAdjust(t, app, "adjust-2")

	if calls.Load() != 2 {
		t.Fatalf("distinct keys must both execute, ran %d times", calls.Load())
	}
}
