package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animesense/animesense-server/internal/domain"
)

func TestCountByLabel_SortsByCountThenLabel(t *testing.T) {
	counts := CountByLabel([]string{
		"Neutral", "Positive", "Positive", "Negative", "Neutral", "Positive",
	})

	require.Len(t, counts, 3)
	assert.Equal(t, domain.LabelCount{Label: "Positive", Count: 3}, counts[0])
	assert.Equal(t, domain.LabelCount{Label: "Neutral", Count: 2}, counts[1])
	assert.Equal(t, domain.LabelCount{Label: "Negative", Count: 1}, counts[2])
}

func TestCountByLabel_TieBreakIsLexicographic(t *testing.T) {
	counts := CountByLabel([]string{"joy", "anger", "anger", "joy"})

	require.Len(t, counts, 2)
	assert.Equal(t, "anger", counts[0].Label)
	assert.Equal(t, "joy", counts[1].Label)
}

func TestShares_SumToOne(t *testing.T) {
	counts := CountByLabel([]string{"a", "a", "a", "b", "b", "c", "c", "d"})
	shares := Shares(counts)

	sum := 0.0
	for _, share := range shares {
		sum += share
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.375, shares["a"], 1e-9)
}

func TestShares_Empty(t *testing.T) {
	assert.Empty(t, Shares(nil))
}

func genreRows(pairs ...[2]string) []*domain.GenreRow {
	rows := make([]*domain.GenreRow, len(pairs))
	for i, p := range pairs {
		rows[i] = &domain.GenreRow{Genre: p[0], Sentiment: p[1]}
	}
	return rows
}

func TestTopGenres_Truncates(t *testing.T) {
	rows := genreRows(
		[2]string{"Action", ""}, [2]string{"Action", ""}, [2]string{"Action", ""},
		[2]string{"Comedy", ""}, [2]string{"Comedy", ""},
		[2]string{"Drama", ""},
	)

	top := TopGenres(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, domain.LabelCount{Label: "Action", Count: 3}, top[0])
	assert.Equal(t, domain.LabelCount{Label: "Comedy", Count: 2}, top[1])

	// Zero limit means no truncation.
	assert.Len(t, TopGenres(rows, 0), 3)
}

func TestDominant(t *testing.T) {
	counts := CountByLabel([]string{"Positive", "Positive", "Negative"})
	dom, ok := Dominant(counts)
	require.True(t, ok)
	assert.Equal(t, "Positive", dom.Label)

	_, ok = Dominant(nil)
	assert.False(t, ok)
}

func TestMeanRating_IgnoresUnparseable(t *testing.T) {
	records := []*domain.Record{
		{Rating: "8.0"},
		{Rating: "6.0"},
		{Rating: domain.Unknown},
		{Rating: ""},
	}

	mean, ok := MeanRating(records)
	require.True(t, ok)
	assert.InDelta(t, 7.0, mean, 1e-9)
}

func TestMeanRating_NoneParseable(t *testing.T) {
	_, ok := MeanRating([]*domain.Record{{Rating: "N/A"}})
	assert.False(t, ok)
}

func TestBestRatedType(t *testing.T) {
	records := []*domain.Record{
		{Type: "TV", Rating: "8.0"},
		{Type: "TV", Rating: "6.0"},
		{Type: "Movie", Rating: "9.0"},
		{Type: "Movie", Rating: "8.0"},
		{Type: "OVA", Rating: domain.Unknown},
		{Type: "", Rating: "10.0"},
	}

	best, ok := BestRatedType(records)
	require.True(t, ok)
	assert.Equal(t, "Movie", best.Type)
	assert.InDelta(t, 8.5, best.Mean, 1e-9)
}

func TestBestRatedType_NothingQualifies(t *testing.T) {
	records := []*domain.Record{
		{Type: domain.Unknown, Rating: "8.0"},
		{Type: "TV", Rating: domain.Unknown},
	}
	_, ok := BestRatedType(records)
	assert.False(t, ok)
}
