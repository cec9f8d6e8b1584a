package models

import "time"

// GameRecord is one fetched game, immutable once built. Only derived metrics
// outlive the batch it belongs to.
type GameRecord struct {
	White       string    `json:"white"`
	Black       string    `json:"black"`
	PGN         string    `json:"pgn"`
	TimeControl string    `json:"time_control"`
	URL         string    `json:"url"`
	PlayedAs    string    `json:"player_color"` // "white" or "black"
	Outcome     string    `json:"outcome"`      // "win", "loss", "draw" from the subject's perspective
	Opening     string    `json:"opening"`      // "" when unknown
	EndTime     time.Time `json:"end_time"`
}

// GameMetrics is the fixed metric vector reduced from one game's classified
// moves. All rates are relative to the subject player's analyzed move count.
type GameMetrics struct {
	BlunderRate        float64 `json:"blunder_rate"`
	PositionalScore    float64 `json:"positional_score"`
	TacticalScore      float64 `json:"tactical_score"`
	EndgameScore       float64 `json:"endgame_score"`
	DefensiveScore     float64 `json:"defensive_score"`
	EvaluationVariance float64 `json:"evaluation_variance"` // normalized to [0,1]
	AvgMoveTime        float64 `json:"avg_move_time"`       // always 0: PGNs carry no per-move clock
	OpeningEval        float64 `json:"opening_eval"`
	MiddlegameEval     float64 `json:"middlegame_eval"`
	EndgameEval        float64 `json:"endgame_eval"`
	MoveCount          int     `json:"move_count"`
}

// AggregateMetrics is the element-wise mean of a batch's GameMetrics.
// Recomputed fresh per analysis request; never persisted with identity.
type AggregateMetrics struct {
	BlunderRate        float64 `json:"blunder_rate"`
	PositionalScore    float64 `json:"positional_score"`
	TacticalScore      float64 `json:"tactical_score"`
	EndgameScore       float64 `json:"endgame_score"`
	DefensiveScore     float64 `json:"defensive_score"`
	EvaluationVariance float64 `json:"evaluation_variance"`
	AvgMoveTime        float64 `json:"avg_move_time"`
	OpeningEval        float64 `json:"opening_eval"`
	MiddlegameEval     float64 `json:"middlegame_eval"`
	EndgameEval        float64 `json:"endgame_eval"`
	MoveCount          float64 `json:"move_count"`
}

// OpeningStat is the per-opening rollup across a batch, keyed by opening name.
type OpeningStat struct {
	Opening string  `json:"opening"`
	Total   int     `json:"total"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	WinRate float64 `json:"win_rate"`
}

// ProfileResult is the ranked archetype outcome for one analysis request.
type ProfileResult struct {
	PrimaryProfile   string             `json:"primary_profile"`
	SecondaryProfile string             `json:"secondary_profile"`
	Description      string             `json:"description"`
	Confidence       float64            `json:"confidence"` // 0-100
	ProfileScores    map[string]float64 `json:"profile_scores"`
}

// AnalysisReport is the complete output of one analyze request.
type AnalysisReport struct {
	Username      string           `json:"username"`
	Evaluations   []int            `json:"evaluations"`
	Blunders      []string         `json:"blunders"`
	Mistakes      []string         `json:"mistakes"`
	Inaccuracies  []string         `json:"inaccuracies"`
	OpeningStats  []OpeningStat    `json:"opening_stats"`
	PlayerProfile ProfileResult    `json:"player_profile"`
	Metrics       AggregateMetrics `json:"metrics"`
	GamesAnalyzed int              `json:"games_analyzed"`
	TotalGames    int              `json:"total_games"`
}

// SavedReport is a persisted analysis report row.
type SavedReport struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	TimeFilter       string    `json:"time_filter"`
	PrimaryProfile   string    `json:"primary_profile"`
	SecondaryProfile string    `json:"secondary_profile"`
	Confidence       float64   `json:"confidence"`
	GamesAnalyzed    int       `json:"games_analyzed"`
	TotalGames       int       `json:"total_games"`
	MetricsJSON      string    `json:"metrics_json"`
	CreatedAt        time.Time `json:"created_at"`
}

// ColorStat is the per-color win rate rollup for the playstyle endpoint.
type ColorStat struct {
	Games   int     `json:"games"`
	WinRate float64 `json:"win_rate"`
}
