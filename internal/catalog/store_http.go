package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"BankCatalog/internal/locale"
)

const maxCatalogBody = 8 << 20

// HTTPSource fetches the static catalog resource over HTTP:
// {BaseURL}/mock/products.<locale>.json, falling back to
// {BaseURL}/mock/products.json when the localized resource is missing.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (s *HTTPSource) Ping(ctx context.Context) error {
	_, err := s.fetch(ctx, "products.json")
	return err
}

func (s *HTTPSource) Products(ctx context.Context, l locale.Locale) ([]Product, error) {
	raw, err := s.fetch(ctx, resourceName(l))
	if errors.Is(err, errResourceMissing) {
		raw, err = s.fetch(ctx, "products.json")
	}
	if errors.Is(err, errResourceMissing) {
		return nil, fmt.Errorf("%w: catalog resource not found", ErrCatalogUnavailable)
	}
	if err != nil {
		return nil, err
	}

	ps, err := decodeCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogUnavailable, err)
	}
	return ps, nil
}

var errResourceMissing = fmt.Errorf("%w: resource missing", ErrCatalogUnavailable)

func (s *HTTPSource) fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/mock/%s", s.BaseURL, name), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errResourceMissing
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrCatalogUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return raw, nil
}
