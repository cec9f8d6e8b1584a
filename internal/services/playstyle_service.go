package services

import (
	"context"
	"math"
	"strings"

	apperrors "github.com/vytor/chessprofile/internal/errors"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/openings"
)

// PlaystyleSummary is the engine-free view of a player's habits: opening
// repertoire and per-color results over the fetched batch.
type PlaystyleSummary struct {
	Username     string                      `json:"username"`
	TotalGames   int                         `json:"total_games"`
	OpeningStats []models.OpeningStat        `json:"opening_stats"`
	ColorStats   map[string]models.ColorStat `json:"color_stats"`
}

// PlaystyleService summarizes a player's games without engine analysis.
type PlaystyleService interface {
	GetPlaystyle(ctx context.Context, username, timeFilter string) (*PlaystyleSummary, error)
}

type playstyleService struct {
	games GameService
}

func NewPlaystyleService(games GameService) PlaystyleService {
	return &playstyleService{games: games}
}

func (s *playstyleService) GetPlaystyle(ctx context.Context, username, timeFilter string) (*PlaystyleSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username", "is required")
	}

	records, err := s.games.FetchGames(ctx, username, timeFilter)
	if err != nil {
		return nil, err
	}

	summary := &PlaystyleSummary{
		Username:     username,
		TotalGames:   len(records),
		OpeningStats: openings.Rollup(records),
		ColorStats:   colorStats(records),
	}
	if summary.OpeningStats == nil {
		summary.OpeningStats = []models.OpeningStat{}
	}
	return summary, nil
}

func colorStats(records []models.GameRecord) map[string]models.ColorStat {
	stats := map[string]models.ColorStat{}
	for _, color := range []string{"white", "black"} {
		var games, wins int
		for _, rec := range records {
			if rec.PlayedAs != color {
				continue
			}
			games++
			if rec.Outcome == "win" {
				wins++
			}
		}
		cs := models.ColorStat{Games: games}
		if games > 0 {
			cs.WinRate = math.Round(float64(wins)/float64(games)*1000) / 10
		}
		stats[color] = cs
	}
	return stats
}
