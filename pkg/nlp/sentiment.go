package nlp

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Compound-score cutoffs per the VADER convention.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

var analyzer = govader.NewSentimentIntensityAnalyzer()

// AnalyzeSentiment labels a message and maps the compound score onto
// [0,1]. Empty input is neutral.
func AnalyzeSentiment(text string) Sentiment {
	s := strings.TrimSpace(text)
	if s == "" {
		return Sentiment{Label: SentimentNeutral, Score: 0.5}
	}

	compound := analyzer.PolarityScores(s).Compound
	label := SentimentNeutral
	switch {
	case compound >= positiveThreshold:
		label = SentimentPositive
	case compound <= negativeThreshold:
		label = SentimentNegative
	}
	return Sentiment{
		Label: label,
		Score: math.Round((compound+1)/2*1000) / 1000,
	}
}
