package ledger

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"

	"budgetbuddy/internal/core"
	applog "budgetbuddy/internal/log"
)

// TransactionEdit carries the mutable fields of a transaction. The
// identifier and the creation timestamp are never part of an edit.
type TransactionEdit struct {
	Kind        core.Kind
	Amount      core.Money
	Category    string
	Description string
}

// GoalEdit carries the mutable fields of a goal. The saved amount changes
// through UpdateGoalSaved, not through edits.
type GoalEdit struct {
	Name     string
	Target   core.Money
	Deadline core.Date
}

// Store is the session owner of the ledger document. It is constructed
// once at startup, loads the document from its repository, and writes the
// whole document back after every successful mutation. If a save fails the
// in-memory state rolls back, so the store always reflects durable state.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	logger *applog.Logger
	doc    core.LedgerDocument
}

// NewStore loads the persisted document and returns a ready store.
func NewStore(ctx context.Context, repo Repository, logger *applog.Logger) (*Store, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	doc, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	logger.Info("Ledger loaded",
		applog.FieldTransactions, len(doc.Transactions),
		applog.FieldGoals, len(doc.Goals))
	return &Store{
		repo:   repo,
		logger: logger.WithComponent(applog.ComponentLedger),
		doc:    doc,
	}, nil
}

// AddTransaction validates, assigns an identifier and the current
// timestamp, appends, and persists. Returns the stored transaction.
func (s *Store) AddTransaction(ctx context.Context, kind core.Kind, amount core.Money, category, description string) (core.Transaction, error) {
	t := core.Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Timestamp:   time.Now(),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	next.Transactions = append(next.Transactions, t)
	if err := s.commit(ctx, next); err != nil {
		return core.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "Transaction added",
		applog.FieldID, t.ID,
		applog.FieldKind, string(t.Kind),
		applog.FieldAmountCents, t.Amount.Cents,
		applog.FieldCategory, t.Category)
	return t, nil
}

// EditTransaction replaces the mutable fields of an existing transaction.
// The identifier and creation timestamp are preserved.
func (s *Store) EditTransaction(ctx context.Context, id string, edit TransactionEdit) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := findTransaction(next.Transactions, id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}

	t := next.Transactions[i]
	t.Kind = edit.Kind
	t.Amount = edit.Amount
	t.Category = edit.Category
	t.Description = edit.Description
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	next.Transactions[i] = t

	if err := s.commit(ctx, next); err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction edited", applog.FieldID, id)
	return t, nil
}

// DeleteTransaction removes a transaction, preserving the order of the
// remaining entries. No tombstones, no history.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := findTransaction(next.Transactions, id)
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}
	next.Transactions = append(next.Transactions[:i], next.Transactions[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction deleted", applog.FieldID, id)
	return nil
}

// AddGoal validates and appends a new savings goal with nothing saved yet.
func (s *Store) AddGoal(ctx context.Context, name string, target core.Money, deadline core.Date) (core.Goal, error) {
	g := core.Goal{
		ID:       uuid.NewString(),
		Name:     name,
		Target:   target,
		Deadline: deadline,
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	next.Goals = append(next.Goals, g)
	if err := s.commit(ctx, next); err != nil {
		return core.Goal{}, err
	}

	s.logger.InfoContext(ctx, "Goal added",
		applog.FieldID, g.ID,
		applog.FieldGoalName, g.Name,
		applog.FieldAmountCents, g.Target.Cents)
	return g, nil
}

// EditGoal replaces a goal's name, target, and deadline.
func (s *Store) EditGoal(ctx context.Context, id string, edit GoalEdit) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := findGoal(next.Goals, id)
	if i < 0 {
		return core.Goal{}, fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}

	g := next.Goals[i]
	g.Name = edit.Name
	g.Target = edit.Target
	g.Deadline = edit.Deadline
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	next.Goals[i] = g

	if err := s.commit(ctx, next); err != nil {
		return core.Goal{}, err
	}
	s.logger.InfoContext(ctx, "Goal edited", applog.FieldID, id)
	return g, nil
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := findGoal(next.Goals, id)
	if i < 0 {
		return fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}
	next.Goals = append(next.Goals[:i], next.Goals[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Goal deleted", applog.FieldID, id)
	return nil
}

// UpdateGoalSaved sets a goal's saved amount. Saving past the target is
// allowed; progress is clamped for display only.
func (s *Store) UpdateGoalSaved(ctx context.Context, id string, saved core.Money) (core.Goal, error) {
	if saved.IsNegative() {
		return core.Goal{}, core.ErrNegativeSaved
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := findGoal(next.Goals, id)
	if i < 0 {
		return core.Goal{}, fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}
	next.Goals[i].Saved = saved

	if err := s.commit(ctx, next); err != nil {
		return core.Goal{}, err
	}
	g := next.Goals[i]
	s.logger.InfoContext(ctx, "Goal saved amount updated",
		applog.FieldID, id,
		applog.FieldAmountCents, saved.Cents)
	return g, nil
}

// Transactions returns a restartable sequence over the transactions in
// insertion order. Each range over it sees a fresh snapshot.
func (s *Store) Transactions() iter.Seq[core.Transaction] {
	return func(yield func(core.Transaction) bool) {
		s.mu.Lock()
		txs := append([]core.Transaction(nil), s.doc.Transactions...)
		s.mu.Unlock()
		for _, t := range txs {
			if !yield(t) {
				return
			}
		}
	}
}

// Goals returns a restartable sequence over the goals in insertion order.
func (s *Store) Goals() iter.Seq[core.Goal] {
	return func(yield func(core.Goal) bool) {
		s.mu.Lock()
		goals := append([]core.Goal(nil), s.doc.Goals...)
		s.mu.Unlock()
		for _, g := range goals {
			if !yield(g) {
				return
			}
		}
	}
}

// FindTransaction returns a transaction by id.
func (s *Store) FindTransaction(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := findTransaction(s.doc.Transactions, id); i >= 0 {
		return s.doc.Transactions[i], nil
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
}

// FindGoal returns a goal by id.
func (s *Store) FindGoal(id string) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := findGoal(s.doc.Goals, id); i >= 0 {
		return s.doc.Goals[i], nil
	}
	return core.Goal{}, fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
}

// Document returns a snapshot copy of the full ledger document.
func (s *Store) Document() core.LedgerDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// commit persists the candidate document and, only on success, makes it
// the store's state. Callers must hold the mutex.
func (s *Store) commit(ctx context.Context, next core.LedgerDocument) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	s.doc = next
	return nil
}

func findTransaction(txs []core.Transaction, id string) int {
	for i := range txs {
		if txs[i].ID == id {
			return i
		}
	}
	return -1
}

func findGoal(goals []core.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}
