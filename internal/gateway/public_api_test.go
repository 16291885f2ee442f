package gateway_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"BankCatalog/internal/catalog"
	"BankCatalog/internal/contact"
	"BankCatalog/internal/gateway"
	"BankCatalog/pkg/kit"
)

const adminToken = "test-admin-token"

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{
		Catalog:    catalog.NewGateway(catalog.NewSeedSource(), catalog.GatewayOptions{Log: zap.NewNop()}),
		Log:        zap.NewNop(),
		AdminToken: adminToken,
		PageSize:   2,
	}

	h := catalog.NewHandler(s, kit.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "catalog",
	})

	return httptest.NewServer(h)
}

func newContactTS(t *testing.T) *httptest.Server {
	t.Helper()

	sim := contact.NewSimulator(zap.NewNop())
	sim.Latency = 0
	sim.Draw = func() float64 { return 0.9 }

	s := &contact.Server{Submitter: sim, Log: zap.NewNop()}

	h := contact.NewHandler(s, kit.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "contact",
	})

	return httptest.NewServer(h)
}

func newGatewayTS(t *testing.T, catalogURL, contactURL string) *httptest.Server {
	t.Helper()

	h, err := gateway.NewHandler(
		gateway.Deps{
			CatalogURL: catalogURL,
			ContactURL: contactURL,
		},
		kit.HTTPDeps{
			Log:     zap.NewNop(),
			Service: "gateway",
			// Registry: nil
		},
	)
	if err != nil {
		t.Fatalf("gateway.NewHandler: %v", err)
	}

	return httptest.NewServer(h)
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

type productPage struct {
	Items      []catalog.Product `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	TotalItems int               `json:"totalItems"`
	Query      string            `json:"query"`
	Locale     string            `json:"locale"`
}

func TestGateway_PublicAPI_HappyPath(t *testing.T) {
	catalogTS := newCatalogTS(t)
	t.Cleanup(catalogTS.Close)

	contactTS := newContactTS(t)
	t.Cleanup(contactTS.Close)

	gwTS := newGatewayTS(t, catalogTS.URL, contactTS.URL)
	t.Cleanup(gwTS.Close)

	c := &http.Client{}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/products?page=2", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list status=%d body=%s", resp.StatusCode, string(raw))
		}

		var pg productPage
		if err := json.Unmarshal(raw, &pg); err != nil {
			t.Fatalf("decode list: %v body=%s", err, string(raw))
		}
		if pg.TotalItems != 4 || pg.TotalPages != 2 || pg.Page != 2 {
			t.Fatalf("page=%+v", pg)
		}
		if len(pg.Items) != 2 || pg.Items[0].ID != "3" {
			t.Fatalf("items=%+v", pg.Items)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/products/2", nil, map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get status=%d body=%s", resp.StatusCode, string(raw))
		}

		var p catalog.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Fatalf("decode product: %v body=%s", err, string(raw))
		}
		if p.ID != "2" || p.Category != "Cards" || p.CategoryKey != "Tarjetas" {
			t.Fatalf("product=%+v", p)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/products/404", nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("missing product status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/contact", map[string]any{
			"name":           "Ana Pérez",
			"email":          "ana@example.com",
			"documentType":   "DNI",
			"documentNumber": "12345678",
			"subject":        "Consulta",
			"message":        "Quisiera información sobre préstamos.",
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("contact status=%d body=%s", resp.StatusCode, string(raw))
		}

		var res contact.Result
		if err := json.Unmarshal(raw, &res); err != nil {
			t.Fatalf("decode result: %v body=%s", err, string(raw))
		}
		if !res.Success || res.Message != "Mensaje enviado exitosamente" || res.Reference == "" {
			t.Fatalf("result=%+v", res)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/admin/cache/clear", nil, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("clear without token status=%d body=%s", resp.StatusCode, string(raw))
		}

		resp, raw = doJSON(t, c, http.MethodPost, gwTS.URL+"/admin/cache/clear", nil, map[string]string{
			"Authorization": "Bearer " + adminToken,
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("clear status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/readyz", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("readyz status=%d body=%s", resp.StatusCode, string(raw))
		}
	}
}

func TestGateway_InvalidContactIsRejectedUpstream(t *testing.T) {
	catalogTS := newCatalogTS(t)
	t.Cleanup(catalogTS.Close)

	contactTS := newContactTS(t)
	t.Cleanup(contactTS.Close)

	gwTS := newGatewayTS(t, catalogTS.URL, contactTS.URL)
	t.Cleanup(gwTS.Close)

	resp, raw := doJSON(t, &http.Client{}, http.MethodPost, gwTS.URL+"/contact", map[string]any{
		"name":  "A",
		"email": "nope",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}

	var er kit.ErrorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	if er.Error != "invalid form" {
		t.Fatalf("error=%q", er.Error)
	}
}

func TestGateway_UpstreamDown(t *testing.T) {
	catalogTS := newCatalogTS(t)
	t.Cleanup(catalogTS.Close)

	contactTS := newContactTS(t)
	contactURL := contactTS.URL
	contactTS.Close()

	gwTS := newGatewayTS(t, catalogTS.URL, contactURL)
	t.Cleanup(gwTS.Close)

	c := &http.Client{}

	{
		resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/contact", map[string]any{"name": "Ana"}, nil)
		if resp.StatusCode != http.StatusBadGateway {
			t.Fatalf("contact status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/readyz", nil, nil)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("readyz status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/products", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("catalog still reachable: status=%d body=%s", resp.StatusCode, string(raw))
		}
	}
}
