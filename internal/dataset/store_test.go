package dataset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animesense/animesense-server/internal/domain"
	apperrors "github.com/animesense/animesense-server/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeArtifact(t *testing.T, s *Store, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.Path(name), []byte(content), 0o644))
}

const emotionCSV = `anime_id,name,genre,type,episodes,rating,members,sentiment,emotion
1,Cowboy Bebop,"Action, Sci-Fi",TV,26,8.82,486824,Positive,neutral
2,Monster,"Drama, Thriller",TV,74,,30000,Neutral,sadness
`

const sentimentCSV = `anime_id,name,genre,type,episodes,rating,members,sentiment
1,Cowboy Bebop,"Action, Sci-Fi",TV,26,8.82,486824,Positive
3,Gintama,Comedy,TV,201,9.04,336376,Positive
`

const rawCSV = `anime_id,name,genre,type,episodes,rating,members
1,Cowboy Bebop,"Action, Sci-Fi",TV,26,8.82,486824
2,Monster,,TV,74,8.72,30000
3,Gintama,Comedy,TV,201,9.04,336376
`

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing value", "", domain.Unknown},
		{"positive infinity", "+Inf", "0"},
		{"lowercase infinity", "inf", "0"},
		{"negative infinity", "-Inf", "0"},
		{"clean text", "Action", "Action"},
		{"clean number", "8.82", "8.82"},
		{"already unknown", domain.Unknown, domain.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCell(tt.in))
		})
	}
}

func TestSanitizeCell_Idempotent(t *testing.T) {
	for _, in := range []string{"", "inf", "-Inf", "Action", "8.82", domain.Unknown} {
		once := SanitizeCell(in)
		assert.Equal(t, once, SanitizeCell(once), "re-sanitizing %q must be a no-op", in)
	}
}

func TestLoadRecords_PrefersEmotionTable(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, EmotionFile, emotionCSV)
	writeArtifact(t, s, SentimentFile, sentimentCSV)

	table, err := s.LoadRecords()
	require.NoError(t, err)

	assert.Equal(t, EmotionFile, table.Source)
	assert.True(t, table.HasEmotion)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "sadness", table.Records[1].Emotion)
}

func TestLoadRecords_FallsBackToSentimentTable(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, SentimentFile, sentimentCSV)

	table, err := s.LoadRecords()
	require.NoError(t, err)

	assert.Equal(t, SentimentFile, table.Source)
	assert.False(t, table.HasEmotion)
	require.Len(t, table.Records, 2)
	// No emotion column in the fallback source, so no fabricated labels.
	assert.Empty(t, table.Records[0].Emotion)
}

func TestLoadRecords_SanitizesMissingValues(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, EmotionFile, emotionCSV)

	table, err := s.LoadRecords()
	require.NoError(t, err)

	// Monster has a blank rating cell in the fixture.
	assert.Equal(t, domain.Unknown, table.Records[1].Rating)
}

func TestLoadRecords_NoData(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadRecords()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestLoadGenres_UsesCachedArtifact(t *testing.T) {
	s := newTestStore(t)
	// The cached table deliberately disagrees with what raw expansion
	// would produce, to prove no recompute happens while the file exists.
	writeArtifact(t, s, GenresFile, `anime_id,name,genre,type,episodes,rating,members,sentiment,emotion
9,Cached Title,Mecha,TV,12,7.5,100,Positive,joy
`)
	writeArtifact(t, s, RawFile, rawCSV)

	rows := s.LoadGenres()
	require.Len(t, rows, 1)
	assert.Equal(t, "Mecha", rows[0].Genre)
	assert.Equal(t, 9, rows[0].AnimeID)
}

func TestLoadGenres_DerivesAndPersistsWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, RawFile, rawCSV)

	rows := s.LoadGenres()
	// Cowboy Bebop expands to 2 rows, Monster has no genre, Gintama 1.
	require.Len(t, rows, 3)
	assert.Equal(t, "Action", rows[0].Genre)
	assert.Equal(t, "Sci-Fi", rows[1].Genre)
	assert.Equal(t, "Comedy", rows[2].Genre)

	// The derived table is persisted as a cache.
	_, err := os.Stat(s.Path(GenresFile))
	require.NoError(t, err)

	// A second call reads the cache and agrees.
	again := s.LoadGenres()
	require.Len(t, again, 3)
}

func TestLoadGenres_FailsOpenWithoutBaseDataset(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.LoadGenres())
}

func TestExpandGenres(t *testing.T) {
	records := []*domain.Record{
		{AnimeID: 1, Name: "A", Genre: "Action, Comedy", Rating: "8.2", Sentiment: "Positive"},
		{AnimeID: 2, Name: "B", Genre: "", Rating: "3.0", Sentiment: "Negative"},
		{AnimeID: 3, Name: "C", Genre: "Drama", Rating: "5.5", Sentiment: "Neutral"},
	}

	rows := ExpandGenres(records)
	require.Len(t, rows, 3)

	assert.Equal(t, "Action", rows[0].Genre)
	assert.Equal(t, "Comedy", rows[1].Genre)
	assert.Equal(t, "Drama", rows[2].Genre)

	// All other fields are retained.
	assert.Equal(t, 1, rows[0].AnimeID)
	assert.Equal(t, "8.2", rows[0].Rating)
	assert.Equal(t, "Positive", rows[0].Sentiment)
	assert.Equal(t, "8.2", rows[1].Rating)
	assert.Equal(t, "Positive", rows[1].Sentiment)
}

func TestExpandGenres_CommaWithoutSpaceDoesNotSplit(t *testing.T) {
	records := []*domain.Record{
		{AnimeID: 1, Genre: "Action,Comedy"},
	}
	rows := ExpandGenres(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "Action,Comedy", rows[0].Genre)
}

func TestSaveSentiment_OmitsEmotionColumn(t *testing.T) {
	s := newTestStore(t)
	records := []*domain.Record{
		{AnimeID: 1, Name: "A", Rating: "8.0", Sentiment: "Positive", Emotion: "joy"},
	}
	require.NoError(t, s.SaveSentiment(records))

	data, err := os.ReadFile(s.Path(SentimentFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "emotion")
	assert.Contains(t, string(data), "sentiment")
}

func TestWriteTable_ReadTable_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	header := []string{"genre", "Negative", "Neutral", "Positive"}
	rows := [][]string{
		{"Action", "3", "10", "25"},
		{"Comedy", "0", "5", "12"},
	}
	require.NoError(t, s.WriteTable(OpinionTrendsFile, header, rows))

	table, err := s.ReadTable(OpinionTrendsFile)
	require.NoError(t, err)
	assert.Equal(t, header, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "25", table.Rows[0]["Positive"])

	records := table.Records()
	assert.Equal(t, "Action", records[0]["genre"])
	assert.Equal(t, 25, records[0]["Positive"])
	assert.Equal(t, 0, records[1]["Negative"])
}

func TestReadTable_Missing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ReadTable(OpinionTrendsFile)
	assert.True(t, os.IsNotExist(err))
}

func TestReport_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.ReadReport()
	require.Error(t, err)

	require.NoError(t, s.WriteReport("line one\nline two\n"))

	text, modTime, err := s.ReadReport()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", text)
	assert.False(t, modTime.IsZero())
	assert.Equal(t, filepath.Join(s.Dir(), ReportFile), s.Path(ReportFile))
}
