package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BankCatalog/internal/locale"
)

// Forwarder posts the form as JSON to an upstream inquiry endpoint. A 2xx
// answer is success, any other status is a rejection and transport errors
// are connection failures.
type Forwarder struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

func NewForwarder(url string, log *zap.Logger) *Forwarder {
	return &Forwarder{
		URL:    url,
		Client: &http.Client{Timeout: defaultForwardTimeout},
		Log:    log,
	}
}

const defaultForwardTimeout = 5 * time.Second

var defaultForwardClient = &http.Client{Timeout: defaultForwardTimeout}

func (f *Forwarder) Submit(ctx context.Context, form Form, l locale.Locale) (res Result) {
	ref := uuid.NewString()
	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("contact forwarder panicked", zap.String("reference", ref), zap.Any("panic", r))
			res = newResult(KindConnection, l, ref)
		}
	}()

	body, err := json.Marshal(form)
	if err != nil {
		log.Error("encode contact form", zap.String("reference", ref), zap.Error(err))
		return newResult(KindConnection, l, ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		log.Error("build contact request", zap.String("reference", ref), zap.Error(err))
		return newResult(KindConnection, l, ref)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", string(l))
	req.Header.Set("X-Request-Id", ref)

	client := f.Client
	if client == nil {
		client = defaultForwardClient
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Warn("contact upstream unreachable", zap.String("reference", ref), zap.Error(err))
		return newResult(KindConnection, l, ref)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("contact upstream rejected", zap.String("reference", ref), zap.Int("status", resp.StatusCode))
		return newResult(KindRejected, l, ref)
	}
	return newResult(KindOK, l, ref)
}
