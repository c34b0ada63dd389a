// Package http is the presentation layer: the tabbed web UI for data
// entry and the chart endpoints. It consumes the record store and the
// aggregation functions; no ledger logic lives here.
package http

import (
	"container/list"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"budgetbuddy/internal/ledger"
	applog "budgetbuddy/internal/log"
	appweb "budgetbuddy/web"
)

// lruCache with TTL and size-based eviction, used for rendered chart
// PNGs. Entries expire lazily on Get; every mutation purges the cache.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Purge drops every entry. Called after each ledger mutation so charts
// never show stale totals.
func (c *lruCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

type Server struct {
	http.Server
	store      *ledger.Store
	templates  *template.Template
	logger     *applog.Logger
	chartCache *lruCache[[]byte]
}

// NewServer configures routes and templates, returning a ready-to-run
// server over the given record store.
func NewServer(addr string, store *ledger.Store, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:      store,
		logger:     logger.WithComponent(applog.ComponentHTTP),
		chartCache: newLRUCache[[]byte](8, 5*time.Minute),
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Tiny cache for static assets
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.withRequestLog(s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/transactions", s.withRequestLog(s.handleCreateTransaction))
	mux.HandleFunc("/transactions/update", s.withRequestLog(s.handleUpdateTransaction))
	mux.HandleFunc("/transactions/delete", s.withRequestLog(s.handleDeleteTransaction))
	mux.HandleFunc("/goals", s.withRequestLog(s.handleCreateGoal))
	mux.HandleFunc("/goals/update", s.withRequestLog(s.handleUpdateGoal))
	mux.HandleFunc("/goals/delete", s.withRequestLog(s.handleDeleteGoal))
	mux.HandleFunc("/goals/saved", s.withRequestLog(s.handleUpdateGoalSaved))
	mux.HandleFunc("/charts/categories.png", s.withRequestLog(s.handleCategoryChart))
	mux.HandleFunc("/charts/summary.png", s.withRequestLog(s.handleSummaryChart))

	return s
}

// withRequestLog adds security headers, a request id, and request/response
// logging to a handler.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// goal progress bar widths are inline style attributes
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self'")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
