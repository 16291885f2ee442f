// Package browse drives the product listing a visitor sees: it loads the
// catalog for a locale, relabels categories, applies the debounced search
// and pages the results. Renderers subscribe to State changes and call the
// entry points on user action.
package browse

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"BankCatalog/internal/catalog"
	"BankCatalog/internal/locale"
	"BankCatalog/internal/paging"
	"BankCatalog/internal/search"
)

// Catalog is the part of catalog.Gateway a session needs.
type Catalog interface {
	Products(ctx context.Context, l locale.Locale) ([]catalog.Product, error)
}

type State struct {
	Locale         locale.Locale
	Loading        bool
	Err            error
	Query          string
	CommittedQuery string
	IsSearching    bool
	Results        []catalog.Product
	CurrentPage    int
	TotalPages     int
	PageItems      []catalog.Product
}

type Options struct {
	Locale      locale.Locale
	PageSize    int
	SearchDelay time.Duration
	Clock       clockwork.Clock
	// OnNavigate runs after a successful page change.
	OnNavigate func(page int)
}

type Session struct {
	cat    Catalog
	search *search.Engine[catalog.Product]
	pages  *paging.Paginator[catalog.Product]
	stop   func()

	mu        sync.Mutex
	locale    locale.Locale
	loading   bool
	err       error
	committed string
	subs      map[int]func(State)
	nextSub   int
}

func NewSession(cat Catalog, opts Options) *Session {
	l := opts.Locale
	if l == "" {
		l = locale.Default
	}
	size := opts.PageSize
	if size < 1 {
		size = paging.DefaultPageSize
	}

	s := &Session{
		cat:    cat,
		search: search.NewEngine[catalog.Product](nil, search.Options{Delay: opts.SearchDelay, Clock: opts.Clock}),
		pages:  paging.New[catalog.Product](nil, size),
		locale: l,
		subs:   map[int]func(State){},
	}
	s.pages.OnNavigate(opts.OnNavigate)
	s.stop = s.search.Subscribe(s.onSearch)
	return s
}

// Load fetches the catalog for the current locale. On failure the error
// is kept in State so the renderer can offer Retry.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	l := s.locale
	s.mu.Unlock()
	return s.load(ctx, l)
}

func (s *Session) Retry(ctx context.Context) error { return s.Load(ctx) }

// SetLocale switches language and reloads. Product IDs, the query and the
// current page survive the switch. If the reload fails the session stays
// on the previous locale and its labels.
func (s *Session) SetLocale(ctx context.Context, l locale.Locale) error {
	return s.load(ctx, l)
}

// load fetches l and only then makes it the session locale, so Locale
// and the category labels in State always agree.
func (s *Session) load(ctx context.Context, l locale.Locale) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.publish()

	ps, err := s.cat.Products(ctx, l)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
	} else {
		s.locale = l
	}
	s.mu.Unlock()

	if err != nil {
		s.publish()
		return err
	}

	s.search.SetItems(catalog.LocalizeAll(ps, l))
	return nil
}

func (s *Session) SetQuery(q string) { s.search.SetQuery(q) }

func (s *Session) ClearSearch() { s.search.ClearSearch() }

func (s *Session) GoToPage(n int) bool {
	if !s.pages.GoToPage(n) {
		return false
	}
	s.publish()
	return true
}

func (s *Session) ResetPagination() {
	s.pages.Reset()
	s.publish()
}

func (s *Session) State() State {
	st := s.search.State()
	return s.compose(st)
}

func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) Close() {
	s.stop()
	s.search.Close()
}

// onSearch keeps the paginator in step with the search results. A new
// committed query starts again from the first page.
func (s *Session) onSearch(st search.State[catalog.Product]) {
	s.pages.SetItems(st.Results)

	s.mu.Lock()
	changed := st.CommittedQuery != s.committed
	s.committed = st.CommittedQuery
	s.mu.Unlock()

	if changed {
		s.pages.Reset()
	}
	s.publishState(s.compose(st))
}

func (s *Session) compose(st search.State[catalog.Product]) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Locale:         s.locale,
		Loading:        s.loading,
		Err:            s.err,
		Query:          st.Query,
		CommittedQuery: st.CommittedQuery,
		IsSearching:    st.IsSearching,
		Results:        st.Results,
		CurrentPage:    s.pages.CurrentPage(),
		TotalPages:     s.pages.TotalPages(),
		PageItems:      s.pages.Items(),
	}
}

func (s *Session) publish() { s.publishState(s.State()) }

func (s *Session) publishState(st State) {
	s.mu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}
