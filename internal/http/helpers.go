package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"budgetbuddy/internal/core"
)

// displayTimeLayout matches the timestamp form the UI shows for each
// transaction row: MM/DD/YYYY HH:MM.
const displayTimeLayout = "01/02/2006 15:04"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":     formatAmount,
		"timestamp": formatTimestamp,
	}
}

// formatAmount renders a money value as a dollar string with thousands
// separators, e.g. "$1,234.56" or "-$0.05".
func formatAmount(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, grouped.String(), cents%100)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayTimeLayout)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// redirectBack sends the browser back to the index on the given tab,
// optionally carrying a user-facing error message.
func redirectBack(w http.ResponseWriter, r *http.Request, tab, errMsg string) {
	q := url.Values{}
	q.Set("tab", tab)
	if errMsg != "" {
		q.Set("error", errMsg)
	}
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

// userMessage maps a core error to the inline text the form shows.
// Unknown errors get a generic message; details stay in the log.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a positive number."
	case errors.Is(err, core.ErrInvalidKind):
		return "Type must be income or expense."
	case errors.Is(err, core.ErrInvalidDate):
		return "Date must be YYYY-MM-DD."
	case errors.Is(err, core.ErrEmptyCategory):
		return "Category cannot be empty."
	case errors.Is(err, core.ErrDescriptionTooLong):
		return "Description is too long (max 200 characters)."
	case errors.Is(err, core.ErrEmptyName):
		return "Goal name cannot be empty."
	case errors.Is(err, core.ErrNameTooLong):
		return "Goal name is too long (max 100 characters)."
	case errors.Is(err, core.ErrInvalidTarget):
		return "Target must be a positive amount."
	case errors.Is(err, core.ErrNegativeSaved):
		return "Saved amount cannot be negative."
	case errors.Is(err, core.ErrNotFound):
		return "That record no longer exists."
	default:
		return "Something went wrong; the change was not saved."
	}
}

// requirePost rejects anything but POST form submissions.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}
