package catalog

import (
	"context"
	"sync"

	"BankCatalog/internal/locale"
)

// MemSource serves a fixed product list for every locale. It backs tests
// and the default development configuration.
type MemSource struct {
	mu sync.RWMutex
	m  map[locale.Locale][]Product
}

func NewMemSource(products []Product) *MemSource {
	return &MemSource{m: map[locale.Locale][]Product{locale.Default: normalize(products)}}
}

// NewSeedSource returns a MemSource with a small built-in catalog.
func NewSeedSource() *MemSource {
	return NewMemSource([]Product{
		{
			ID:               "1",
			Title:            "Cuenta de Ahorros",
			ShortDescription: "Cuenta básica para ahorrar",
			Description:      "Una cuenta de ahorros perfecta para comenzar",
			Image:            "/images/savings.jpg",
			CategoryKey:      "Cuentas",
			Features:         []string{"Sin comisiones", "Intereses competitivos"},
		},
		{
			ID:               "2",
			Title:            "Tarjeta de Crédito Premium",
			ShortDescription: "Tarjeta con beneficios exclusivos",
			Description:      "Tarjeta de crédito con múltiples beneficios",
			Image:            "/images/credit.jpg",
			CategoryKey:      "Tarjetas",
			Features:         []string{"Programa de puntos", "Seguro de viaje"},
		},
		{
			ID:               "3",
			Title:            "Préstamo Personal",
			ShortDescription: "Financiación rápida",
			Description:      "Préstamo personal con aprobación inmediata",
			Image:            "/images/loan.jpg",
			CategoryKey:      "Préstamos",
			Features:         []string{"Aprobación rápida", "Tasas competitivas"},
		},
		{
			ID:               "4",
			Title:            "Fondo de Inversión",
			ShortDescription: "Haz crecer tu dinero",
			Description:      "Fondo diversificado con gestión profesional",
			Image:            "/images/investment.jpg",
			CategoryKey:      "Inversiones",
		},
	})
}

// Set replaces the list served for locale.
func (s *MemSource) Set(l locale.Locale, products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[l] = normalize(products)
}

func (s *MemSource) Ping(ctx context.Context) error { return nil }

func (s *MemSource) Products(ctx context.Context, l locale.Locale) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ps, ok := s.m[l]
	if !ok {
		ps = s.m[locale.Default]
	}

	out := make([]Product, len(ps))
	copy(out, ps)
	return out, nil
}

func normalize(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		if p.Category == "" {
			p.Category = p.CategoryKey
		}
		if p.Features == nil {
			p.Features = []string{}
		}
		out[i] = p
	}
	return out
}
