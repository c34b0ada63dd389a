package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the direction of a transaction: income or expense.
	Kind string

	// Date is a calendar date without a meaningful time component,
	// used for optional goal deadlines. The zero value means "no date".
	Date struct {
		time.Time
	}

	// Transaction is one income or expense line. The identifier and the
	// creation timestamp are assigned by the record store and never change
	// afterwards; edits replace only the remaining fields.
	Transaction struct {
		ID          string
		Kind        Kind
		Amount      Money
		Category    string
		Description string
		Timestamp   time.Time
	}

	// Goal is a savings goal. Saved may exceed Target; progress is
	// clamped for display only.
	Goal struct {
		ID       string
		Name     string
		Target   Money
		Saved    Money
		Deadline Date
	}

	// LedgerDocument is the full persisted state: two ordered sequences.
	// Insertion order is meaningful and preserved through save/load.
	LedgerDocument struct {
		Transactions []Transaction
		Goals        []Goal
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidKind        = errors.New("invalid transaction kind")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyCategory      = errors.New("empty category")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyName          = errors.New("empty goal name")
	ErrNameTooLong        = errors.New("goal name too long (max 100 characters)")
	ErrInvalidTarget      = errors.New("goal target must be positive")
	ErrNegativeSaved      = errors.New("saved amount cannot be negative")
	ErrNotFound           = errors.New("record not found")
	ErrCorruptData        = errors.New("corrupt ledger data")
)

// DefaultCategories is the seed list offered by the UI. Categories are
// free-text labels; this list only keeps names consistent in practice.
var DefaultCategories = []string{
	"Food", "Rent", "Entertainment", "Transport",
	"Utilities", "Savings", "Other",
}

// ParseKind normalizes a kind label. Matching is case-insensitive so that
// documents written by the earlier application ("Income"/"Expense") load.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Income):
		return Income, nil
	case string(Expense):
		return Expense, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// ParseDate parses an optional YYYY-MM-DD deadline. Empty input yields the
// zero Date (no deadline).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// IsEmpty reports whether no date was set.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String returns the YYYY-MM-DD form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if len(g.Name) > 100 {
		return ErrNameTooLong
	}
	if g.Target.Cents <= 0 {
		return ErrInvalidTarget
	}
	if g.Saved.IsNegative() {
		return ErrNegativeSaved
	}
	return nil
}

// Clone returns a deep copy of the document so callers can mutate their
// copy without aliasing the store's state.
func (d LedgerDocument) Clone() LedgerDocument {
	out := LedgerDocument{}
	if d.Transactions != nil {
		out.Transactions = append([]Transaction(nil), d.Transactions...)
	}
	if d.Goals != nil {
		out.Goals = append([]Goal(nil), d.Goals...)
	}
	return out
}
