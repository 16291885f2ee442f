package contact

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"BankCatalog/internal/locale"
	"BankCatalog/pkg/kit"
)

const (
	submitLimitPerWindow = 5
	submitLimitWindow    = 60 * time.Second
)

type Server struct {
	Submitter Submitter
	Log       *zap.Logger
	Limiter   *kit.IPRateLimiter
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/readyz", kit.Healthz)

	limiter := s.Limiter
	if limiter == nil {
		limiter = kit.NewIPRateLimiter(submitLimitPerWindow, submitLimitWindow)
	}
	r.With(limiter.Middleware).Post("/contact", s.submit)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var f Form
	if err := kit.DecodeJSON(w, r, &f); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	f = f.Normalize()
	if err := Validate(f); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			kit.WriteError(w, r, http.StatusBadRequest, "invalid form", verrs)
			return
		}
		kit.WriteError(w, r, http.StatusBadRequest, "invalid form", map[string]any{"cause": err.Error()})
		return
	}

	l := locale.Parse(r.Header.Get("Accept-Language"))
	if v := r.URL.Query().Get("locale"); v != "" {
		l = locale.Parse(v)
	}

	res := s.Submitter.Submit(r.Context(), f, l)
	if s.Log != nil {
		s.Log.Info("contact submitted",
			zap.String("reference", res.Reference),
			zap.Bool("success", res.Success),
			zap.String("kind", string(res.Kind)),
		)
	}
	kit.WriteJSON(w, http.StatusOK, res)
}
