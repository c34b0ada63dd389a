// Package storage provides the persistence gateways for the ledger
// document: a JSON file (the default), SQLite, and an in-memory holder.
// All of them implement the ledger Repository port; raw strings and wire
// shapes never leak past this package into the domain model.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"budgetbuddy/internal/core"
)

// legacyTimeLayout is the date-time form written by the earlier
// application: MM/DD/YYYY HH:MM.
const legacyTimeLayout = "01/02/2006 15:04"

// JSONRepository persists the ledger document as a single JSON file.
// Saves are atomic whole-file replaces: write a temp file in the target
// directory, sync, then rename over the destination, so a crash mid-write
// can never leave a half-written, unreadable file behind.
type JSONRepository struct {
	path string

	// rename is swappable so tests can simulate a crash between the
	// temp write and the final rename.
	rename func(oldpath, newpath string) error
}

// NewJSONRepository creates a repository writing to path, creating the
// parent directory if needed.
func NewJSONRepository(path string) (*JSONRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}
	return &JSONRepository{path: path, rename: os.Rename}, nil
}

type transactionDTO struct {
	ID          string `json:"id,omitempty"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp,omitempty"`
	// date is the field name used by the earlier application; read-only
	LegacyDate string `json:"date,omitempty"`
}

type goalDTO struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Target   string  `json:"target"`
	Saved    string  `json:"saved,omitempty"`
	Deadline *string `json:"deadline"`
}

type documentDTO struct {
	Transactions []transactionDTO `json:"transactions"`
	Goals        []goalDTO        `json:"goals"`
}

// Load reads the document. A missing file yields an empty document. A root
// object decodes canonically; a root bare array is the legacy shape and is
// upgraded to {transactions: <array>, goals: []}. Anything else fails with
// core.ErrCorruptData.
func (r *JSONRepository) Load(_ context.Context) (core.LedgerDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.LedgerDocument{}, nil
		}
		return core.LedgerDocument{}, fmt.Errorf("read ledger file: %w", err)
	}

	dto, err := decodeDocument(data)
	if err != nil {
		return core.LedgerDocument{}, err
	}

	var doc core.LedgerDocument
	for i, t := range dto.Transactions {
		tx, err := t.toDomain()
		if err != nil {
			return core.LedgerDocument{}, fmt.Errorf("%w: transaction %d: %v", core.ErrCorruptData, i, err)
		}
		doc.Transactions = append(doc.Transactions, tx)
	}
	for i, g := range dto.Goals {
		goal, err := g.toDomain()
		if err != nil {
			return core.LedgerDocument{}, fmt.Errorf("%w: goal %d: %v", core.ErrCorruptData, i, err)
		}
		doc.Goals = append(doc.Goals, goal)
	}
	return doc, nil
}

// decodeDocument normalizes the two accepted root shapes into one DTO
// before any domain conversion runs: object first, bare sequence second.
func decodeDocument(data []byte) (documentDTO, error) {
	var dto documentDTO
	objErr := json.Unmarshal(data, &dto)
	if objErr == nil {
		return dto, nil
	}

	var legacy []transactionDTO
	if err := json.Unmarshal(data, &legacy); err == nil {
		return documentDTO{Transactions: legacy}, nil
	}

	return documentDTO{}, fmt.Errorf("%w: %v", core.ErrCorruptData, objErr)
}

// Save atomically replaces the ledger file with the serialized document.
func (r *JSONRepository) Save(_ context.Context, doc core.LedgerDocument) error {
	dto := documentDTO{
		Transactions: make([]transactionDTO, 0, len(doc.Transactions)),
		Goals:        make([]goalDTO, 0, len(doc.Goals)),
	}
	for _, t := range doc.Transactions {
		dto.Transactions = append(dto.Transactions, transactionFromDomain(t))
	}
	for _, g := range doc.Goals {
		dto.Goals = append(dto.Goals, goalFromDomain(g))
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := r.rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (t transactionDTO) toDomain() (core.Transaction, error) {
	kind, err := core.ParseKind(t.Kind)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseMoney(t.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", t.Amount, err)
	}

	ts := t.Timestamp
	if ts == "" {
		ts = t.LegacyDate
	}
	var when time.Time
	if ts != "" {
		when, err = parseTimestamp(ts)
		if err != nil {
			return core.Transaction{}, err
		}
	}

	id := t.ID
	if id == "" {
		// Documents from the earlier application carry no ids
		id = uuid.NewString()
	}

	return core.Transaction{
		ID:          id,
		Kind:        kind,
		Amount:      amount,
		Category:    t.Category,
		Description: t.Description,
		Timestamp:   when,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if when, err := time.Parse(time.RFC3339, s); err == nil {
		return when, nil
	}
	if when, err := time.Parse(legacyTimeLayout, s); err == nil {
		return when, nil
	}
	return time.Time{}, fmt.Errorf("timestamp %q: %w", s, core.ErrInvalidDate)
}

func (g goalDTO) toDomain() (core.Goal, error) {
	target, err := core.ParseMoney(g.Target)
	if err != nil {
		return core.Goal{}, fmt.Errorf("target %q: %w", g.Target, err)
	}
	saved := core.Money{}
	if g.Saved != "" {
		saved, err = core.ParseMoney(g.Saved)
		if err != nil {
			return core.Goal{}, fmt.Errorf("saved %q: %w", g.Saved, err)
		}
	}
	var deadline core.Date
	if g.Deadline != nil {
		deadline, err = core.ParseDate(*g.Deadline)
		if err != nil {
			return core.Goal{}, fmt.Errorf("deadline %q: %w", *g.Deadline, err)
		}
	}

	id := g.ID
	if id == "" {
		id = uuid.NewString()
	}

	return core.Goal{
		ID:       id,
		Name:     g.Name,
		Target:   target,
		Saved:    saved,
		Deadline: deadline,
	}, nil
}

func transactionFromDomain(t core.Transaction) transactionDTO {
	ts := ""
	if !t.Timestamp.IsZero() {
		ts = t.Timestamp.Format(time.RFC3339)
	}
	return transactionDTO{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Amount:      t.Amount.String(),
		Category:    t.Category,
		Description: t.Description,
		Timestamp:   ts,
	}
}

func goalFromDomain(g core.Goal) goalDTO {
	dto := goalDTO{
		ID:     g.ID,
		Name:   g.Name,
		Target: g.Target.String(),
		Saved:  g.Saved.String(),
	}
	if !g.Deadline.IsEmpty() {
		s := g.Deadline.String()
		dto.Deadline = &s
	}
	return dto
}
