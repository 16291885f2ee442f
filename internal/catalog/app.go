package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BankCatalog/internal/locale"
	"BankCatalog/internal/paging"
	"BankCatalog/internal/search"
	"BankCatalog/pkg/kit"
)

const maxPageSize = 50

type Server struct {
	Catalog    *Gateway
	Log        *zap.Logger
	AdminToken string
	PageSize   int
}

type listResponse struct {
	paging.Page[Product]
	Query  string        `json:"query"`
	Locale locale.Locale `json:"locale"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/readyz", s.ready)

	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)

	r.With(kit.BearerAuth(s.AdminToken)).Post("/admin/cache/clear", s.clearCache)
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Catalog.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	l := requestLocale(r)

	products, err := s.Catalog.Products(r.Context(), l)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}

	q := r.URL.Query().Get("q")
	page := queryInt(r, "page", 1)
	size := queryInt(r, "pageSize", s.pageSize())
	if size > maxPageSize {
		size = maxPageSize
	}

	matched := search.Filter(LocalizeAll(products, l), q)
	kit.WriteJSON(w, http.StatusOK, listResponse{
		Page:   paging.Slice(matched, page, size),
		Query:  q,
		Locale: l,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l := requestLocale(r)

	p, ok, err := s.Catalog.ProductByID(r.Context(), l, id)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, Localize(p, l))
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	s.Catalog.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrCatalogUnavailable) {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", map[string]any{"retryable": true})
		return
	}
	if s.Log != nil {
		s.Log.Error("catalog request failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return paging.DefaultPageSize
}

// requestLocale prefers ?locale= over the Accept-Language header.
func requestLocale(r *http.Request) locale.Locale {
	if v := r.URL.Query().Get("locale"); v != "" {
		return locale.Parse(v)
	}
	return locale.Parse(r.Header.Get("Accept-Language"))
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
