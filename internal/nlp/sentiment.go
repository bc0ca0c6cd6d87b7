// Package nlp derives sentiment and emotion labels for catalog records.
//
// Both derivations are total functions: any input, including missing or
// malformed values, maps to a label. Invalid input never produces an error,
// it produces the neutral default.
package nlp

import (
	"strconv"

	"github.com/animesense/animesense-server/internal/domain"
)

// Sentiment rating thresholds. A rating at or above positiveThreshold is
// Positive, at or above neutralThreshold is Neutral, below it Negative.
const (
	positiveThreshold = 7.0
	neutralThreshold  = 4.0
)

// RatingToSentiment maps a rating cell to a sentiment label.
//
// Boundaries are inclusive at the lower edge: exactly 7.0 is Positive and
// exactly 4.0 is Neutral. A blank or unparseable cell is Neutral, not an
// error; the source data carries plenty of unrated titles.
func RatingToSentiment(rating string) string {
	r, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return domain.SentimentNeutral
	}
	return RatingValueToSentiment(r)
}

// RatingValueToSentiment maps an already-parsed rating to a sentiment label.
func RatingValueToSentiment(r float64) string {
	switch {
	case r >= positiveThreshold:
		return domain.SentimentPositive
	case r >= neutralThreshold:
		return domain.SentimentNeutral
	default:
		return domain.SentimentNegative
	}
}
