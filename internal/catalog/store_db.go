package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"BankCatalog/internal/locale"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresSource reads the catalog from a products table holding one row
// per (locale, id). Rows for a locale that has none fall back to the
// default locale.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresSource) Products(ctx context.Context, l locale.Locale) ([]Product, error) {
	out, err := s.list(ctx, l)
	if err == nil && len(out) == 0 && l != locale.Default {
		out, err = s.list(ctx, locale.Default)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return out, nil
}

func (s *PostgresSource) list(ctx context.Context, l locale.Locale) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, title, short_description, description, image, category, features
			FROM products
			WHERE locale = $1
			ORDER BY position ASC, id ASC
		`, string(l))
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var (
				w        wireProduct
				features []byte
			)
			if err := rows.Scan(&w.ID, &w.Title, &w.ShortDescription, &w.Description, &w.Image, &w.Category, &features); err != nil {
				return err
			}
			if len(features) > 0 {
				if err := json.Unmarshal(features, &w.Features); err != nil {
					return fmt.Errorf("product %s features: %w", w.ID, err)
				}
			}
			out = append(out, w.product())
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
