package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbuddy/internal/core"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderCategoryPie(t *testing.T) {
	png, err := RenderCategoryPie([]core.CategoryAmount{
		{Name: "Food", Amount: core.Money{Cents: 26000}},
		{Name: "Rent", Amount: core.Money{Cents: 120000}},
		{Name: "Transport", Amount: core.Money{Cents: 4550}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output must be a PNG")
}

func TestRenderCategoryPieEmpty(t *testing.T) {
	_, err := RenderCategoryPie(nil)
	assert.Error(t, err)

	// Zero-amount categories are skipped, so an all-zero input is empty too
	_, err = RenderCategoryPie([]core.CategoryAmount{{Name: "Food"}})
	assert.Error(t, err)
}

func TestRenderSummaryBar(t *testing.T) {
	png, err := RenderSummaryBar(core.Summary{
		Income:  core.Money{Cents: 100000},
		Expense: core.Money{Cents: 25050},
		Savings: core.Money{Cents: 74950},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderSummaryBarEmpty(t *testing.T) {
	_, err := RenderSummaryBar(core.Summary{})
	assert.Error(t, err)
}

func TestRenderSummaryBarNegativeSavings(t *testing.T) {
	// Spending above income: savings bar drops to zero instead of going negative
	png, err := RenderSummaryBar(core.Summary{
		Income:  core.Money{Cents: 10000},
		Expense: core.Money{Cents: 25000},
		Savings: core.Money{Cents: -15000},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
