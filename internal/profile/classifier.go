package profile

import (
	"fmt"
	"math"
	"sort"

	"github.com/vytor/chessprofile/internal/models"
)

// Classify scores the aggregate metric vector against each archetype, ranks
// the archetypes by score, and returns the primary/secondary labels with a
// confidence measure.
func Classify(metrics models.AggregateMetrics) models.ProfileResult {
	features := featuresFrom(metrics)

	// Ranking and confidence work on the raw scores; rounding is display-only
	// so a near-tie can't flip the secondary profile.
	raw := make(map[string]float64, len(archetypeWeights))
	scores := make(map[string]float64, len(archetypeWeights))
	for name, w := range archetypeWeights {
		raw[name] = score(w, features)
		scores[name] = round2(raw[name])
	}

	type ranked struct {
		name  string
		score float64
	}
	order := make([]ranked, 0, len(raw))
	for name, s := range raw {
		order = append(order, ranked{name: name, score: s})
	}
	// Secondary sort by name keeps equal scores deterministic.
	sort.Slice(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		return order[i].name < order[j].name
	})

	primary := order[0]
	secondary := order[1]

	return models.ProfileResult{
		PrimaryProfile:   primary.name,
		SecondaryProfile: secondary.name,
		Description:      descriptions[primary.name],
		Confidence:       round1(confidence(primary.score, secondary.score)),
		ProfileScores:    scores,
	}
}

// Empty returns the sentinel profile for a batch with no analyzable games.
func Empty(username string) models.ProfileResult {
	return models.ProfileResult{
		PrimaryProfile:   Unknown,
		SecondaryProfile: Unknown,
		Description:      fmt.Sprintf("Not enough games found for %s. Please check the username and try a different time filter.", username),
		Confidence:       0,
		ProfileScores:    map[string]float64{},
	}
}

type featureVector struct {
	tactical        float64
	positional      float64
	endgame         float64
	defensive       float64
	blunderRate     float64
	variance        float64
	inverseMoveTime float64
}

func featuresFrom(m models.AggregateMetrics) featureVector {
	return featureVector{
		tactical:        m.TacticalScore,
		positional:      m.PositionalScore,
		endgame:         m.EndgameScore,
		defensive:       m.DefensiveScore,
		blunderRate:     m.BlunderRate,
		variance:        m.EvaluationVariance,
		inverseMoveTime: 1 / math.Max(m.AvgMoveTime, 0.1),
	}
}

func score(w Weights, f featureVector) float64 {
	return w.Tactical*f.tactical +
		w.Positional*f.positional +
		w.Endgame*f.endgame +
		w.Defensive*f.defensive +
		w.BlunderRate*f.blunderRate +
		w.Variance*f.variance +
		w.InverseMoveTime*f.inverseMoveTime
}

// confidence measures how far the primary archetype outscores the secondary,
// as a percentage of the primary score, clamped to [0,100]. The raw ratio is
// unstable when the leading score is non-positive; the clamp is the defined
// behavior, not a fix.
func confidence(primary, secondary float64) float64 {
	if primary == 0 {
		return 0
	}
	raw := (primary - secondary) / primary * 100
	return math.Min(100, math.Max(0, raw))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
