package nlp

import (
	"github.com/jonreiter/govader"

	"github.com/animesense/animesense-server/internal/domain"
)

// Emotion decision thresholds over VADER polarity scores.
const (
	joyCompound   = 0.6
	angerCompound = -0.6
	sadnessNeg    = 0.4
	trustPos      = 0.4
)

// PolarityScores holds the subset of lexicon scorer output the emotion
// rules consume.
type PolarityScores struct {
	Compound float64
	Positive float64
	Negative float64
}

// PolarityScorer scores free text for overall valence and positive/negative
// intensity. The production implementation is VADER; tests inject fixed
// scores to exercise each decision branch.
type PolarityScorer interface {
	Score(text string) PolarityScores
}

// VaderScorer scores text with the govader lexicon analyzer.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VADER-backed polarity scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements PolarityScorer.
func (s *VaderScorer) Score(text string) PolarityScores {
	scores := s.analyzer.PolarityScores(text)
	return PolarityScores{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Negative: scores.Negative,
	}
}

// EmotionDetector labels title text with one of the five emotion categories.
type EmotionDetector struct {
	scorer PolarityScorer
}

// NewEmotionDetector creates a detector on top of the given scorer.
func NewEmotionDetector(scorer PolarityScorer) *EmotionDetector {
	return &EmotionDetector{scorer: scorer}
}

// Detect maps title text to an emotion label. Decision order, first match
// wins: strong positive valence is joy, strong negative valence is anger,
// high negative intensity is sadness, high positive intensity is trust,
// everything else is neutral. Empty text is neutral without scoring.
func (d *EmotionDetector) Detect(text string) string {
	if text == "" {
		return domain.EmotionNeutral
	}

	scores := d.scorer.Score(text)
	switch {
	case scores.Compound >= joyCompound:
		return domain.EmotionJoy
	case scores.Compound <= angerCompound:
		return domain.EmotionAnger
	case scores.Negative > sadnessNeg:
		return domain.EmotionSadness
	case scores.Positive > trustPos:
		return domain.EmotionTrust
	default:
		return domain.EmotionNeutral
	}
}
