package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"BankCatalog/internal/contact"
	"BankCatalog/pkg/kit"
)

func main() {
	dotenvErr := kit.LoadDotenv()

	service := "contact"
	log := kit.NewLogger(service, kit.Getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	if dotenvErr != nil {
		log.Warn("ignoring malformed .env", zap.Error(dotenvErr))
	}

	port := kit.Getenv("PORT", "8083")

	var sub contact.Submitter
	if upstream := kit.Getenv("CONTACT_UPSTREAM_URL", ""); upstream != "" {
		log.Info("forwarding inquiries", zap.String("upstream", upstream))
		sub = contact.NewForwarder(upstream, log)
	} else {
		sim := contact.NewSimulator(log)
		sim.Latency = kit.GetenvDuration("CONTACT_LATENCY", contact.DefaultLatency)
		sub = sim
	}

	// the gateway appends the visitor to X-Forwarded-For; only its
	// addresses are believed
	trusted, err := kit.ParseTrustedProxies(kit.GetenvList("CONTACT_TRUSTED_PROXIES"))
	if err != nil {
		log.Fatal("invalid CONTACT_TRUSTED_PROXIES", zap.Error(err))
	}

	s := &contact.Server{
		Submitter: sub,
		Log:       log,
		Limiter: kit.NewIPRateLimiter(
			kit.GetenvInt("CONTACT_RATE_LIMIT", 5),
			kit.GetenvDuration("CONTACT_RATE_WINDOW", time.Minute),
			trusted...,
		),
	}

	reg := prometheus.NewRegistry()
	h := contact.NewHandler(s, kit.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
		CORSOrigins:    kit.GetenvList("CORS_ORIGINS"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
