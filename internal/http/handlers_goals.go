package http

import (
	"net/http"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
	applog "budgetbuddy/internal/log"
)

const tabGoals = "goals"

func parseGoalForm(r *http.Request) (string, core.Money, core.Date, error) {
	name := sanitizeInput(r.Form.Get("name"))
	target, err := core.ParseMoney(r.Form.Get("target"))
	if err != nil {
		return "", core.Money{}, core.Date{}, err
	}
	deadline, err := core.ParseDate(r.Form.Get("deadline"))
	if err != nil {
		return "", core.Money{}, core.Date{}, err
	}
	return name, target, deadline, nil
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	name, target, deadline, err := parseGoalForm(r)
	if err != nil {
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	g, err := s.store.AddGoal(r.Context(), name, target, deadline)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to add goal",
			applog.FieldError, err,
			applog.FieldOperation, "create")
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	s.logger.InfoContext(r.Context(), "Goal created",
		applog.FieldID, g.ID,
		applog.FieldGoalName, g.Name)
	redirectBack(w, r, tabGoals, "")
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	name, target, deadline, err := parseGoalForm(r)
	if err != nil {
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	if _, err := s.store.EditGoal(r.Context(), id, ledger.GoalEdit{
		Name:     name,
		Target:   target,
		Deadline: deadline,
	}); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to edit goal",
			applog.FieldError, err,
			applog.FieldID, id,
			applog.FieldOperation, "update")
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	redirectBack(w, r, tabGoals, "")
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete goal",
			applog.FieldError, err,
			applog.FieldID, id,
			applog.FieldOperation, "delete")
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	redirectBack(w, r, tabGoals, "")
}

func (s *Server) handleUpdateGoalSaved(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	saved, err := core.ParseMoney(r.Form.Get("saved"))
	if err != nil {
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	if _, err := s.store.UpdateGoalSaved(r.Context(), id, saved); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update goal saved amount",
			applog.FieldError, err,
			applog.FieldID, id,
			applog.FieldOperation, "update")
		redirectBack(w, r, tabGoals, userMessage(err))
		return
	}

	redirectBack(w, r, tabGoals, "")
}
