package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animesense/animesense-server/internal/domain"
)

func sentimentOf(g *domain.GenreRow) string { return g.Sentiment }

func TestNewCrossTab_ZeroFillsAbsentCombinations(t *testing.T) {
	rows := genreRows(
		[2]string{"Action", "Positive"},
		[2]string{"Action", "Positive"},
		[2]string{"Comedy", "Negative"},
	)

	ct := NewCrossTab(rows, sentimentOf)

	assert.Equal(t, []string{"Action", "Comedy"}, ct.Genres)
	assert.Equal(t, []string{"Negative", "Positive"}, ct.Labels)

	// Every (genre, label) cell exists, including unobserved pairs.
	assert.Equal(t, 2, ct.Count("Action", "Positive"))
	assert.Equal(t, 0, ct.Count("Action", "Negative"))
	assert.Equal(t, 1, ct.Count("Comedy", "Negative"))
	assert.Equal(t, 0, ct.Count("Comedy", "Positive"))
}

func TestCrossTab_RowTotalAndRatio(t *testing.T) {
	rows := genreRows(
		[2]string{"Action", "Positive"},
		[2]string{"Action", "Positive"},
		[2]string{"Action", "Negative"},
		[2]string{"Drama", "Negative"},
	)

	ct := NewCrossTab(rows, sentimentOf)

	assert.Equal(t, 3, ct.RowTotal("Action"))
	assert.InDelta(t, 2.0/3.0, ct.Ratio("Action", "Positive"), 1e-9)
	assert.InDelta(t, 1.0, ct.Ratio("Drama", "Negative"), 1e-9)
}

func TestCrossTab_MaxRatioGenre(t *testing.T) {
	rows := genreRows(
		[2]string{"Action", "Positive"},
		[2]string{"Action", "Negative"},
		[2]string{"Drama", "Negative"},
	)

	ct := NewCrossTab(rows, sentimentOf)

	neg, ok := ct.MaxRatioGenre("Negative")
	require.True(t, ok)
	assert.Equal(t, "Drama", neg)

	pos, ok := ct.MaxRatioGenre("Positive")
	require.True(t, ok)
	assert.Equal(t, "Action", pos)

	_, ok = ct.MaxRatioGenre("Neutral")
	assert.False(t, ok, "absent label column has no max")
}

func TestCrossTab_LabelTotals(t *testing.T) {
	rows := genreRows(
		[2]string{"Action", "joy"},
		[2]string{"Comedy", "joy"},
		[2]string{"Drama", "sadness"},
	)

	ct := NewCrossTab(rows, func(g *domain.GenreRow) string { return g.Sentiment })
	totals := ct.LabelTotals()

	require.Len(t, totals, 2)
	assert.Equal(t, domain.LabelCount{Label: "joy", Count: 2}, totals[0])
	assert.Equal(t, domain.LabelCount{Label: "sadness", Count: 1}, totals[1])
}

func TestCrossTab_CSVShape(t *testing.T) {
	rows := genreRows(
		[2]string{"Comedy", "Positive"},
		[2]string{"Action", "Negative"},
	)

	ct := NewCrossTab(rows, sentimentOf)

	assert.Equal(t, []string{"genre", "Negative", "Positive"}, ct.Header())
	cells := ct.RowCells()
	require.Len(t, cells, 2)
	assert.Equal(t, []string{"Action", "1", "0"}, cells[0])
	assert.Equal(t, []string{"Comedy", "0", "1"}, cells[1])
}

func TestCrossTab_Empty(t *testing.T) {
	ct := NewCrossTab(nil, sentimentOf)
	assert.Empty(t, ct.Genres)
	assert.Empty(t, ct.RowCells())
	_, ok := ct.MaxRatioGenre("Positive")
	assert.False(t, ok)
}
