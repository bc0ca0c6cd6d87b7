package dataset

// Artifact file names inside the data directory. Every derived table is a
// CSV with a header row; the report is plain text.
const (
	// RawFile is the raw catalog dropped in by the dataset provider.
	RawFile = "anime.csv"
	// SentimentFile is the record table with the derived sentiment column.
	SentimentFile = "with_sentiment.csv"
	// EmotionFile is the record table with sentiment and emotion columns.
	EmotionFile = "with_emotions.csv"
	// UnifiedFile is the trimmed unified column set.
	UnifiedFile = "unified_raw.csv"
	// GenresFile is the genre-expansion table, also used as a
	// compute-if-absent cache.
	GenresFile = "anime_with_sentiment_genres.csv"
	// OpinionTrendsFile is the genre by sentiment cross-tabulation.
	OpinionTrendsFile = "opinion_trends.csv"
	// EmotionTrendsFile is the genre by emotion cross-tabulation.
	EmotionTrendsFile = "emotion_trends.csv"
	// ReportFile is the four-line insight report.
	ReportFile = "insights_report.md"
)
