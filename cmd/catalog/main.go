package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"BankCatalog/internal/catalog"
	"BankCatalog/internal/paging"
	"BankCatalog/pkg/kit"
)

func main() {
	dotenvErr := kit.LoadDotenv()

	service := "catalog"
	log := kit.NewLogger(service, kit.Getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	if dotenvErr != nil {
		log.Warn("ignoring malformed .env", zap.Error(dotenvErr))
	}

	port := kit.Getenv("PORT", "8082")

	src, closeSrc, err := newSource(log)
	if err != nil {
		log.Fatal("init catalog source failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	gw := catalog.NewGateway(src, catalog.GatewayOptions{
		TTL:      kit.GetenvDuration("CATALOG_TTL", catalog.DefaultTTL),
		Log:      log,
		Registry: reg,
	})

	s := &catalog.Server{
		Catalog:    gw,
		Log:        log,
		AdminToken: kit.Getenv("ADMIN_TOKEN", ""),
		PageSize:   kit.GetenvInt("PAGE_SIZE", paging.DefaultPageSize),
	}

	h := catalog.NewHandler(s, kit.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
		CORSOrigins:    kit.GetenvList("CORS_ORIGINS"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log, closeSrc); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// newSource picks the catalog backend from CATALOG_SOURCE:
// memory (default), file, http or postgres.
func newSource(log *zap.Logger) (catalog.Source, func(), error) {
	noop := func() {}

	switch kind := kit.Getenv("CATALOG_SOURCE", "memory"); kind {
	case "memory":
		return catalog.NewSeedSource(), noop, nil
	case "file":
		dir := kit.Getenv("CATALOG_DIR", "public/mock")
		log.Info("catalog from files", zap.String("dir", dir))
		return catalog.NewFileSource(dir), noop, nil
	case "http":
		base := kit.Getenv("CATALOG_URL", "")
		if base == "" {
			return nil, noop, fmt.Errorf("CATALOG_URL is required for CATALOG_SOURCE=http")
		}
		log.Info("catalog from http", zap.String("base_url", base))
		return catalog.NewHTTPSource(base), noop, nil
	case "postgres":
		db, err := sql.Open("pgx", kit.Getenv("DATABASE_URL", ""))
		if err != nil {
			return nil, noop, err
		}
		db.SetMaxOpenConns(kit.GetenvInt("DB_MAX_OPEN_CONNS", 10))
		return catalog.NewPostgresSource(db), func() { _ = db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown CATALOG_SOURCE %q", kind)
	}
}
