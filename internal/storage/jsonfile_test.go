package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbuddy/internal/core"
)

func testDocument() core.LedgerDocument {
	return core.LedgerDocument{
		Transactions: []core.Transaction{
			{
				ID:          "t1",
				Kind:        core.Income,
				Amount:      core.Money{Cents: 100000},
				Category:    "Salary",
				Description: "August pay",
				Timestamp:   time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:          "t2",
				Kind:        core.Expense,
				Amount:      core.Money{Cents: 25050},
				Category:    "Food",
				Description: "groceries",
				Timestamp:   time.Date(2026, 8, 2, 18, 15, 0, 0, time.UTC),
			},
		},
		Goals: []core.Goal{
			{
				ID:       "g1",
				Name:     "Vacation",
				Target:   core.Money{Cents: 50000},
				Saved:    core.Money{Cents: 12500},
				Deadline: mustDate("2026-12-31"),
			},
			{
				ID:     "g2",
				Name:   "Emergency fund",
				Target: core.Money{Cents: 100000},
			},
		},
	}
}

func mustDate(s string) core.Date {
	d, err := core.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestJSONRepositoryMissingFile(t *testing.T) {
	repo, err := NewJSONRepository(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)

	doc, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Transactions)
	assert.Empty(t, doc.Goals)
}

func TestJSONRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	repo, err := NewJSONRepository(path)
	require.NoError(t, err)

	want := testDocument()
	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Transactions, 2)
	require.Len(t, got.Goals, 2)
	for i := range want.Transactions {
		w, g := want.Transactions[i], got.Transactions[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Kind, g.Kind)
		assert.Equal(t, w.Amount, g.Amount, "exact decimal must survive the round trip")
		assert.Equal(t, w.Category, g.Category)
		assert.Equal(t, w.Description, g.Description)
		assert.True(t, w.Timestamp.Equal(g.Timestamp))
	}
	assert.Equal(t, want.Goals[0], got.Goals[0])
	assert.Equal(t, want.Goals[1], got.Goals[1])
}

func TestJSONRepositoryLegacyShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	legacy := `[
	  {"date": "08/01/2026 09:30", "description": "pay", "amount": "1000.00", "kind": "Income", "category": "Other"},
	  {"date": "08/02/2026 18:15", "description": "groceries", "amount": "250.50", "kind": "Expense", "category": "Food"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	repo, err := NewJSONRepository(path)
	require.NoError(t, err)

	doc, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, doc.Transactions, 2, "bare sequence upgrades to the transactions list")
	assert.Empty(t, doc.Goals, "legacy documents have no goals")

	first := doc.Transactions[0]
	assert.NotEmpty(t, first.ID, "legacy records get fresh identifiers")
	assert.Equal(t, core.Income, first.Kind, "capitalized kinds are accepted")
	assert.Equal(t, int64(100000), first.Amount.Cents)
	assert.Equal(t, time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC), first.Timestamp.UTC())

	second := doc.Transactions[1]
	assert.Equal(t, core.Expense, second.Kind)
	assert.Equal(t, int64(25050), second.Amount.Cents)
	assert.Equal(t, "Food", second.Category)
}

func TestJSONRepositoryCorruptData(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", `{{{{`},
		{"wrong root type", `42`},
		{"bad amount", `{"transactions": [{"kind": "income", "amount": "lots", "category": "Other"}], "goals": []}`},
		{"bad kind", `{"transactions": [{"kind": "transfer", "amount": "1.00", "category": "Other"}], "goals": []}`},
		{"bad goal target", `{"transactions": [], "goals": [{"name": "Car", "target": "-5", "deadline": null}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "records.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			repo, err := NewJSONRepository(path)
			require.NoError(t, err)

			_, err = repo.Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrCorruptData)
		})
	}
}

func TestJSONRepositorySaveAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	repo, err := NewJSONRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), testDocument()))
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	// Simulate a crash after the temp write, before the rename
	repo.rename = func(oldpath, newpath string) error {
		return errors.New("simulated crash")
	}
	err = repo.Save(context.Background(), core.LedgerDocument{})
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, after, "interrupted save must leave the original file byte-for-byte intact")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp artifact must be cleaned up on failure")
	assert.Equal(t, "records.json", entries[0].Name())
}

func TestJSONRepositoryGoalDeadlineNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	repo, err := NewJSONRepository(path)
	require.NoError(t, err)

	doc := core.LedgerDocument{
		Goals: []core.Goal{{ID: "g1", Name: "Car", Target: core.Money{Cents: 500000}}},
	}
	require.NoError(t, repo.Save(context.Background(), doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"deadline": null`)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Goals, 1)
	assert.True(t, got.Goals[0].Deadline.IsEmpty())
}
