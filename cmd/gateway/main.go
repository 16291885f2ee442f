package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"BankCatalog/internal/gateway"
	"BankCatalog/pkg/kit"
)

func main() {
	dotenvErr := kit.LoadDotenv()

	service := "gateway"
	log := kit.NewLogger(service, kit.Getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	if dotenvErr != nil {
		log.Warn("ignoring malformed .env", zap.Error(dotenvErr))
	}

	port := kit.Getenv("PORT", "8080")

	deps := gateway.Deps{
		CatalogURL: kit.Getenv("CATALOG_URL", "http://catalog:8082"),
		ContactURL: kit.Getenv("CONTACT_URL", "http://contact:8083"),
	}

	origins := kit.GetenvList("CORS_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	reg := prometheus.NewRegistry()
	h, err := gateway.NewHandler(deps, kit.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
		CORSOrigins:    origins,
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
