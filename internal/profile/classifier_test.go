package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessprofile/internal/models"
)

func TestClassifyScoresEveryArchetype(t *testing.T) {
	metrics := models.AggregateMetrics{
		TacticalScore:      0.8,
		PositionalScore:    0.5,
		EndgameScore:       0.3,
		DefensiveScore:     0.4,
		BlunderRate:        0.2,
		EvaluationVariance: 0.6,
	}

	result := Classify(metrics)
	require.Len(t, result.ProfileScores, 6)

	// Spot-check the linear combinations against the weight table.
	assert.InDelta(t, 0.38, result.ProfileScores[TacticalAttacker], 1e-9)
	assert.InDelta(t, 0.28, result.ProfileScores[PositionalPlayer], 1e-9)
	assert.InDelta(t, 0.15, result.ProfileScores[EndgameSpecialist], 1e-9)
	assert.InDelta(t, 0.30, result.ProfileScores[DefensivePlayer], 1e-9)
	assert.InDelta(t, 0.30, result.ProfileScores[UnstablePlayer], 1e-9)
	// With avg move time pinned at the 0.1 floor, the speed feature is 10.
	assert.InDelta(t, 6.08, result.ProfileScores[BlitzSpeedster], 1e-9)

	assert.Equal(t, BlitzSpeedster, result.PrimaryProfile)
	assert.Equal(t, TacticalAttacker, result.SecondaryProfile)
	assert.Equal(t, descriptions[BlitzSpeedster], result.Description)
	// (6.08 - 0.38) / 6.08 * 100, rounded to one decimal.
	assert.InDelta(t, 93.8, result.Confidence, 1e-9)
}

func TestClassifyPureBlunderer(t *testing.T) {
	metrics := models.AggregateMetrics{BlunderRate: 1.0}

	result := Classify(metrics)

	assert.InDelta(t, 6.4, result.ProfileScores[BlitzSpeedster], 1e-9)
	assert.InDelta(t, 0.5, result.ProfileScores[UnstablePlayer], 1e-9)
	assert.InDelta(t, 0.3, result.ProfileScores[TacticalAttacker], 1e-9)
	assert.Equal(t, BlitzSpeedster, result.PrimaryProfile)
	assert.Equal(t, UnstablePlayer, result.SecondaryProfile)
	assert.InDelta(t, 92.2, result.Confidence, 1e-9)
}

func TestClassifyTieBreaksByName(t *testing.T) {
	// A zero vector scores 0 for everything except the speed feature, so the
	// only deterministic ordering left is alphabetical for the ties.
	result := Classify(models.AggregateMetrics{})

	assert.Equal(t, BlitzSpeedster, result.PrimaryProfile)
	// DP, ES, PP, TA, UP all score 0; "Defensive Player" sorts first.
	assert.Equal(t, DefensivePlayer, result.SecondaryProfile)
	assert.InDelta(t, 100, result.Confidence, 1e-9)
}

// Ranking must happen on raw scores. Here Unstable Player (0.302) edges out
// Defensive Player (0.300), but both round to 0.30; ranking rounded values
// would fall back to the name tie-break and flip the secondary.
func TestClassifyNearTieRanksOnRawScores(t *testing.T) {
	metrics := models.AggregateMetrics{
		DefensiveScore:     0.5,   // Defensive Player: 0.6 * 0.5 = 0.300
		EvaluationVariance: 0.604, // Unstable Player: 0.5 * 0.604 = 0.302
	}

	result := Classify(metrics)

	assert.Equal(t, BlitzSpeedster, result.PrimaryProfile)
	assert.Equal(t, UnstablePlayer, result.SecondaryProfile)

	// The displayed map is still rounded to two decimals.
	assert.Equal(t, 0.3, result.ProfileScores[UnstablePlayer])
	assert.Equal(t, 0.3, result.ProfileScores[DefensivePlayer])
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name      string
		primary   float64
		secondary float64
		want      float64
	}{
		{"zero primary", 0, 0, 0},
		{"half gap", 2, 1, 50},
		{"no gap", 3, 3, 0},
		{"clamped above", 1, -5, 100},
		{"negative primary clamps to zero", -0.1, -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, confidence(tt.primary, tt.secondary), 1e-9)
		})
	}
}

func TestEmptyProfile(t *testing.T) {
	result := Empty("ghost")

	assert.Equal(t, Unknown, result.PrimaryProfile)
	assert.Equal(t, Unknown, result.SecondaryProfile)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.ProfileScores)
	assert.Contains(t, result.Description, "ghost")
}
