package scorers

import (
	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
)

// recommendationScores maps consensus recommendation keys to scores.
var recommendationScores = map[string]float64{
	"strong_buy":   1.0,
	"buy":          0.75,
	"hold":         0.5,
	"underperform": 0.25,
	"sell":         0.0,
}

// AnalystScorer converts analyst sentiment into a score.
type AnalystScorer struct{}

// NewAnalystScorer creates a new analyst scorer
func NewAnalystScorer() *AnalystScorer {
	return &AnalystScorer{}
}

// Calculate calculates the analyst score.
// Components:
// - Recommendation (60%): consensus recommendation key
// - Target upside (40%): distance to the mean price target
//
// Returns nil when no analyst coverage exists; the combined scorer
// substitutes a neutral value.
func (as *AnalystScorer) Calculate(data *domain.AnalystData) *scoring.AnalystScore {
	if data == nil {
		return nil
	}

	recScore, ok := recommendationScores[data.RecommendationKey]
	if !ok {
		recScore = scoring.NeutralScore
	}

	targetScore := scoring.NeutralScore
	if data.TargetUpside != nil {
		// 0% upside is neutral, +20% upside maxes out
		targetScore = clamp(0.5+*data.TargetUpside*2.5, 0.0, 1.0)
	}

	totalScore := recScore*scoring.AnalystWeightRecommendation +
		targetScore*scoring.AnalystWeightTarget

	return &scoring.AnalystScore{
		Score: round3(totalScore),
		Components: map[string]float64{
			"recommendation": round3(recScore),
			"target_upside":  round3(targetScore),
		},
	}
}
