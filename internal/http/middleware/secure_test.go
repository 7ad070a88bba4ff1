package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSecure_SetsHardeningHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(Secure(SecurityConfig{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	want := map[string]string{
		"X-Frame-Options":         "SAMEORIGIN",
		"X-Content-Type-Options":  "nosniff",
		"Content-Security-Policy": "default-src 'self'; object-src 'none'",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := resp.Header.Get(header); got != value {
			t.Fatalf("expected %s=%q, got %q", header, value, got)
		}
	}
}

func TestSecure_ForceHTTPSRedirects(t *testing.T) {
	app := fiber.New()
	app.Use(Secure(SecurityConfig{ForceHTTPS: true}))
	app.Get("/accounts", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "http://example.org/accounts", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "https://example.org/accounts" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}
