package http

import (
	"net/http"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
	applog "budgetbuddy/internal/log"
)

const tabTransactions = "transactions"

// parseTransactionForm turns submitted form fields into validated inputs.
func parseTransactionForm(r *http.Request) (core.Kind, core.Money, string, string, error) {
	kind, err := core.ParseKind(r.Form.Get("kind"))
	if err != nil {
		return "", core.Money{}, "", "", err
	}
	amount, err := core.ParseMoney(r.Form.Get("amount"))
	if err != nil {
		return "", core.Money{}, "", "", err
	}
	category := sanitizeInput(r.Form.Get("category"))
	if category == "" {
		category = "Other"
	}
	description := sanitizeInput(r.Form.Get("description"))
	return kind, amount, category, description, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	kind, amount, category, description, err := parseTransactionForm(r)
	if err != nil {
		redirectBack(w, r, tabTransactions, userMessage(err))
		return
	}

	tx, err := s.store.AddTransaction(r.Context(), kind, amount, category, description)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to add transaction",
			applog.FieldError, err,
			applog.FieldOperation, "create")
		redirectBack(w, r, tabTransactions, userMessage(err))
		return
	}

	s.chartCache.Purge()
	s.logger.InfoContext(r.Context(), "Transaction created",
		applog.FieldID, tx.ID,
		applog.FieldKind, string(tx.Kind),
		applog.FieldAmountCents, tx.Amount.Cents,
		applog.FieldCategory, tx.Category)
	redirectBack(w, r, tabTransactions, "")
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	kind, amount, category, description, err := parseTransactionForm(r)
	if err != nil {
		redirectBack(w, r, tabTransactions, userMessage(err))
		return
	}

	_, err = s.store.EditTransaction(r.Context(), id, ledger.TransactionEdit{
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to edit transaction",
			applog.FieldError, err,
			applog.FieldID, id,
			applog.FieldOperation, "update")
		redirectBack(w, r, tabTransactions, userMessage(err))
		return
	}

	s.chartCache.Purge()
	redirectBack(w, r, tabTransactions, "")
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete transaction",
			applog.FieldError, err,
			applog.FieldID, id,
			applog.FieldOperation, "delete")
		redirectBack(w, r, tabTransactions, userMessage(err))
		return
	}

	s.chartCache.Purge()
	redirectBack(w, r, tabTransactions, "")
}
