//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E_Browse(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var page struct {
		Items      []map[string]any `json:"items"`
		TotalPages int              `json:"totalPages"`
		TotalItems int              `json:"totalItems"`
	}
	doJSON(t, http.MethodGet, baseURL+"/products?locale=en", nil, nil, &page, 200)
	if len(page.Items) == 0 || page.TotalItems == 0 {
		t.Fatalf("expected non-empty products: %+v", page)
	}

	pid, _ := page.Items[0]["id"].(string)
	if pid == "" {
		t.Fatalf("product id missing in response: %#v", page.Items[0])
	}

	var es, en map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products/"+pid+"?locale=es", nil, nil, &es, 200)
	doJSON(t, http.MethodGet, baseURL+"/products/"+pid+"?locale=en", nil, nil, &en, 200)
	if es["categoryKey"] != en["categoryKey"] {
		t.Fatalf("canonical category differs across locales: es=%v en=%v", es["categoryKey"], en["categoryKey"])
	}

	doJSON(t, http.MethodGet, baseURL+"/products/does-not-exist", nil, nil, nil, 404)

	if os.Getenv("E2E_RESTART_CATALOG") == "1" {
		restartContainer(t, ctx, "catalog")
		waitReady(t, ctx, baseURL+"/readyz")
		doJSON(t, http.MethodGet, baseURL+"/products/"+pid, nil, nil, nil, 200)
	}
}

func TestSystem_E2E_Contact(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	form := map[string]any{
		"name":           "Ana Pérez",
		"email":          fmt.Sprintf("user_%d@example.com", time.Now().UnixNano()),
		"documentType":   "DNI",
		"documentNumber": "12345678",
		"subject":        "Consulta",
		"message":        "Quisiera información sobre préstamos.",
	}

	var res struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
		Kind    string `json:"kind"`
	}
	doJSON(t, http.MethodPost, baseURL+"/contact", form, nil, &res, 200)
	if res.Success == nil || res.Message == "" || res.Kind == "" {
		t.Fatalf("unexpected result shape: %+v", res)
	}

	form["email"] = "not-an-email"
	doJSON(t, http.MethodPost, baseURL+"/contact", form, nil, nil, 400)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
