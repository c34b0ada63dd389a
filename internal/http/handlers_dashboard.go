package http

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"budgetbuddy/internal/charts"
	"budgetbuddy/internal/core"
	applog "budgetbuddy/internal/log"
)

type goalView struct {
	core.Goal
	Pct int // clamped progress as a whole percentage
}

type indexData struct {
	ActiveTab      string
	Error          string
	Categories     []string
	Transactions   []core.Transaction
	Goals          []goalView
	CategoryTotals []core.CategoryAmount
	Summary        core.Summary
	HasExpenses    bool
}

// handleIndex renders the single tabbed page: transactions, goals,
// categories, and the dashboard.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	tab := r.URL.Query().Get("tab")
	switch tab {
	case tabTransactions, tabGoals, "categories", "dashboard":
	default:
		tab = tabTransactions
	}

	transactions := slices.Collect(s.store.Transactions())
	totals := core.CategoryTotals(s.store.Transactions())

	data := indexData{
		ActiveTab:      tab,
		Error:          sanitizeInput(r.URL.Query().Get("error")),
		Categories:     core.DefaultCategories,
		Transactions:   transactions,
		CategoryTotals: totals,
		Summary:        core.Summarize(s.store.Transactions()),
		HasExpenses:    len(totals) > 0,
	}
	for g := range s.store.Goals() {
		data.Goals = append(data.Goals, goalView{
			Goal: g,
			Pct:  int(core.GoalProgress(g).Clamped * 100),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed",
			applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCategoryChart serves the expenses-by-category pie as PNG.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "categories", func() ([]byte, error) {
		return charts.RenderCategoryPie(core.CategoryTotals(s.store.Transactions()))
	})
}

// handleSummaryChart serves the income/expense/savings bar as PNG.
func (s *Server) handleSummaryChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "summary", func() ([]byte, error) {
		return charts.RenderSummaryBar(core.Summarize(s.store.Transactions()))
	})
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, key string, render func() ([]byte, error)) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	png, ok := s.chartCache.Get(key)
	if !ok {
		var err error
		png, err = render()
		if err != nil {
			s.logger.WarnContext(r.Context(), "Chart render failed",
				applog.FieldError, err,
				applog.FieldOperation, key)
			http.Error(w, "nothing to chart yet", http.StatusNotFound)
			return
		}
		s.chartCache.Set(key, png)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
