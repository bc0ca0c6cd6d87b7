// Package domain contains the core business entities for the AnimeSense catalog.
package domain

import "strconv"

// Sentiment labels derived from the numeric rating.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Emotion labels derived from title text polarity.
const (
	EmotionJoy     = "joy"
	EmotionAnger   = "anger"
	EmotionSadness = "sadness"
	EmotionTrust   = "trust"
	EmotionNeutral = "neutral"
)

// Unknown is the sanitization sentinel for missing values. The JSON
// boundary cannot represent NaN, so every empty cell becomes this string
// before a table leaves the dataset layer.
const Unknown = "Unknown"

// GenreSeparator splits a multi-valued genre cell. The separator is exactly
// comma-space; a bare comma inside a genre name does not split.
const GenreSeparator = ", "

// Record is one catalog item. Numeric-ish columns are kept as strings
// because the source CSV mixes numbers with blanks, and sanitization
// replaces blanks with the Unknown sentinel.
type Record struct {
	AnimeID   int    `csv:"anime_id" json:"anime_id"`
	Name      string `csv:"name" json:"name"`
	Genre     string `csv:"genre" json:"genre"`
	Type      string `csv:"type" json:"type"`
	Episodes  string `csv:"episodes" json:"episodes"`
	Rating    string `csv:"rating" json:"rating"`
	Members   string `csv:"members" json:"members"`
	Sentiment string `csv:"sentiment" json:"sentiment"`
	Emotion   string `csv:"emotion" json:"emotion,omitempty"`
}

// RatingValue parses the rating cell. ok is false for blank, Unknown, or
// otherwise unparseable cells; callers treat those rows per their own
// fallback policy rather than failing.
func (r *Record) RatingValue() (float64, bool) {
	v, err := strconv.ParseFloat(r.Rating, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HasGenre reports whether the record carries any genre data.
func (r *Record) HasGenre() bool {
	return r.Genre != "" && r.Genre != Unknown
}

// GenreRow is one (record, genre) pair produced by genre expansion. All
// record fields are copied; Genre holds a single genre name.
type GenreRow struct {
	AnimeID   int    `csv:"anime_id" json:"anime_id"`
	Name      string `csv:"name" json:"name"`
	Genre     string `csv:"genre" json:"genre"`
	Type      string `csv:"type" json:"type"`
	Episodes  string `csv:"episodes" json:"episodes"`
	Rating    string `csv:"rating" json:"rating"`
	Members   string `csv:"members" json:"members"`
	Sentiment string `csv:"sentiment" json:"sentiment"`
	Emotion   string `csv:"emotion" json:"emotion,omitempty"`
}

// LabelCount is one (label, count) pair from a distribution or frequency
// aggregate.
type LabelCount struct {
	Label string
	Count int
}
