package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
	"budgetbuddy/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *ledger.Store) {
	t.Helper()
	store, err := ledger.NewStore(context.Background(), storage.NewMemoryRepository(), nil)
	require.NoError(t, err)
	return NewServer(":0", store, nil), store
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersTabs(t *testing.T) {
	srv, store := newTestServer(t)
	_, err := store.AddTransaction(context.Background(), core.Expense,
		core.Money{Cents: 1250}, "Food", "lunch")
	require.NoError(t, err)

	tests := []struct {
		tab  string
		want string
	}{
		{"transactions", "New transaction"},
		{"goals", "New goal"},
		{"categories", "Spent"},
		{"dashboard", "Current balance"},
		{"bogus", "New transaction"}, // unknown tab falls back
	}
	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			rec := get(t, srv, "/?tab="+tt.tab)
			require.Equal(t, http.StatusOK, rec.Code)
			body, _ := io.ReadAll(rec.Body)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestIndexUnknownPathIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTransactionFlow(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/transactions", url.Values{
		"kind":        {"expense"},
		"amount":      {"12.50"},
		"category":    {"Food"},
		"description": {"lunch"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?tab=transactions", rec.Header().Get("Location"))

	txs := slices.Collect(store.Transactions())
	require.Len(t, txs, 1)
	assert.Equal(t, core.Expense, txs[0].Kind)
	assert.Equal(t, int64(1250), txs[0].Amount.Cents)
	assert.Equal(t, "Food", txs[0].Category)
	assert.NotEmpty(t, txs[0].ID)
}

func TestCreateTransactionDefaultsCategory(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/transactions", url.Values{
		"kind":   {"income"},
		"amount": {"100"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	txs := slices.Collect(store.Transactions())
	require.Len(t, txs, 1)
	assert.Equal(t, "Other", txs[0].Category)
}

func TestCreateTransactionInvalidAmountRedirectsWithError(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/transactions", url.Values{
		"kind":   {"expense"},
		"amount": {"abc"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "transactions", loc.Query().Get("tab"))
	assert.Contains(t, loc.Query().Get("error"), "positive number")
	assert.Empty(t, slices.Collect(store.Transactions()))
}

func TestCreateTransactionLongDescriptionRedirectsWithError(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/transactions", url.Values{
		"kind":        {"expense"},
		"amount":      {"5"},
		"category":    {"Food"},
		"description": {strings.Repeat("x", 201)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, loc.Query().Get("error"), "Description is too long")
	assert.Empty(t, slices.Collect(store.Transactions()))
}

func TestGoalLongNameRedirectsWithError(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/goals", url.Values{
		"name":   {strings.Repeat("x", 101)},
		"target": {"500"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, loc.Query().Get("error"), "Goal name is too long")
	assert.Empty(t, slices.Collect(store.Goals()))
}

func TestDeleteTransaction(t *testing.T) {
	srv, store := newTestServer(t)
	tx, err := store.AddTransaction(context.Background(), core.Income,
		core.Money{Cents: 5000}, "Other", "")
	require.NoError(t, err)

	rec := postForm(t, srv, "/transactions/delete", url.Values{"id": {tx.ID}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, slices.Collect(store.Transactions()))

	// deleting again reports the record missing
	rec = postForm(t, srv, "/transactions/delete", url.Values{"id": {tx.ID}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, loc.Query().Get("error"), "no longer exists")
}

func TestGoalFlow(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/goals", url.Values{
		"name":     {"Vacation"},
		"target":   {"500"},
		"deadline": {"2026-12-31"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	goals := slices.Collect(store.Goals())
	require.Len(t, goals, 1)
	assert.Equal(t, "Vacation", goals[0].Name)
	assert.Equal(t, int64(50000), goals[0].Target.Cents)
	assert.Equal(t, "2026-12-31", goals[0].Deadline.String())

	rec = postForm(t, srv, "/goals/saved", url.Values{
		"id":    {goals[0].ID},
		"saved": {"125"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	goals = slices.Collect(store.Goals())
	require.Len(t, goals, 1)
	assert.Equal(t, int64(12500), goals[0].Saved.Cents)
}

func TestGoalEmptyNameRejected(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/goals", url.Values{
		"name":   {"   "},
		"target": {"500"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, loc.Query().Get("error"), "name cannot be empty")
	assert.Empty(t, slices.Collect(store.Goals()))
}

func TestMutationsRequirePost(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{
		"/transactions", "/transactions/update", "/transactions/delete",
		"/goals", "/goals/update", "/goals/delete", "/goals/saved",
	} {
		rec := get(t, srv, path)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "POST", rec.Header().Get("Allow"), path)
	}
}

func TestChartEndpoints(t *testing.T) {
	srv, store := newTestServer(t)

	// nothing to draw yet
	rec := get(t, srv, "/charts/categories.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = get(t, srv, "/charts/summary.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := store.AddTransaction(context.Background(), core.Expense,
		core.Money{Cents: 2600}, "Food", "")
	require.NoError(t, err)

	for _, path := range []string{"/charts/categories.png", "/charts/summary.png"} {
		rec := get(t, srv, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"), path)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"), path)
	}
}

func TestChartCacheInvalidatedOnMutation(t *testing.T) {
	srv, _ := newTestServer(t)

	postForm(t, srv, "/transactions", url.Values{
		"kind": {"expense"}, "amount": {"10"}, "category": {"Food"},
	})
	rec := get(t, srv, "/charts/categories.png")
	require.Equal(t, http.StatusOK, rec.Code)
	first := rec.Body.Len()
	require.NotZero(t, first)

	// a second category changes the pie
	postForm(t, srv, "/transactions", url.Values{
		"kind": {"expense"}, "amount": {"20"}, "category": {"Transport"},
	})
	rec = get(t, srv, "/charts/categories.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, first, rec.Body.Len())
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	// the goals tab sets bar widths through inline style attributes, which
	// the policy must allow or the bars collapse to zero width
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "style-src 'self' 'unsafe-inline'")
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-1250, "-$12.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(core.Money{Cents: tt.cents}))
	}
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache[string](2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// "b" is now least recently used and gets evicted
	c.Set("c", "3")
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	c.Purge()
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	c := newLRUCache[int](4, -time.Second)
	c.Set("k", 7)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
