package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
	"github.com/vytor/chessprofile/internal/chesscom"
	"github.com/vytor/chessprofile/internal/logger"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/pgn"
)

// GameService fetches and shapes a player's games from the remote archive.
type GameService interface {
	FetchGames(ctx context.Context, username, timeFilter string) ([]models.GameRecord, error)
}

type gameService struct {
	client        chesscom.ClientInterface
	book          *opening.BookECO
	archiveLimit  int
	maxConcurrent int
}

// NewGameService creates a new GameService. archiveLimit caps how many of the
// newest archives are fetched when no time filter is active.
func NewGameService(client chesscom.ClientInterface, archiveLimit, maxConcurrent int) GameService {
	if archiveLimit <= 0 {
		archiveLimit = 5
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &gameService{
		client:        client,
		book:          opening.NewBookECO(),
		archiveLimit:  archiveLimit,
		maxConcurrent: maxConcurrent,
	}
}

// FetchGames returns the player's games newest-archive-first. Upstream
// failures and unknown players degrade to an empty slice rather than an
// error: transient archive trouble must never surface as a failed analysis.
func (s *gameService) FetchGames(ctx context.Context, username, timeFilter string) ([]models.GameRecord, error) {
	log := logger.FromContext(ctx).WithField("username", username)

	exists, err := s.client.PlayerExists(ctx, username)
	if err != nil {
		log.Warn("player lookup failed, treating as no games: %v", err)
		return nil, nil
	}
	if !exists {
		log.Info("player not found")
		return nil, nil
	}

	archives, err := s.client.FetchArchives(ctx, username)
	if err != nil {
		log.Warn("archive fetch failed, treating as no games: %v", err)
		return nil, nil
	}
	if len(archives) == 0 {
		return nil, nil
	}

	// Newest month first. Archive URLs end in /YYYY/MM so the lexicographic
	// order is also chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(archives)))

	cutoff, hasCutoff := cutoffFor(timeFilter, time.Now())
	if hasCutoff {
		archives = filterArchivesByDate(archives, cutoff)
		log.Debug("filtered archives to %d based on time filter %s", len(archives), timeFilter)
	} else if len(archives) > s.archiveLimit {
		// Unfiltered requests only walk the most recent archives.
		archives = archives[:s.archiveLimit]
	}

	monthly := s.fetchArchivesConcurrently(ctx, archives)

	var records []models.GameRecord
	for _, mg := range monthly {
		if mg.PGN == "" {
			continue
		}
		endTime := time.Unix(mg.EndTime, 0)
		if hasCutoff && endTime.Before(cutoff) {
			continue
		}

		playedAs, _, result := chesscom.DeriveResult(username, mg)
		records = append(records, models.GameRecord{
			White:       mg.White.Username,
			Black:       mg.Black.Username,
			PGN:         mg.PGN,
			TimeControl: mg.TimeControl,
			URL:         mg.URL,
			PlayedAs:    playedAs,
			Outcome:     result,
			Opening:     s.resolveOpening(mg.PGN),
			EndTime:     endTime,
		})
	}

	log.Info("fetched %d games for %s", len(records), username)
	return records, nil
}

// fetchArchivesConcurrently fans archive fetches out over a bounded number of
// workers while preserving the archive order in the flattened result.
func (s *gameService) fetchArchivesConcurrently(ctx context.Context, archives []string) []chesscom.MonthlyGame {
	log := logger.FromContext(ctx)

	results := make([][]chesscom.MonthlyGame, len(archives))
	sem := make(chan struct{}, s.maxConcurrent)

	var wg sync.WaitGroup
	for i, url := range archives {
		wg.Add(1)
		go func(idx int, archiveURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			games, err := s.client.FetchMonthly(ctx, archiveURL)
			if err != nil {
				// One bad month does not spoil the batch.
				log.Warn("failed to fetch archive %s: %v", archiveURL, err)
				return
			}
			results[idx] = games
		}(i, url)
	}
	wg.Wait()

	var flattened []chesscom.MonthlyGame
	for _, games := range results {
		flattened = append(flattened, games...)
	}
	return flattened
}

// resolveOpening extracts the opening label from the PGN headers, falling
// back to an ECO book lookup over the actual moves when the headers are bare.
func (s *gameService) resolveOpening(pgnText string) string {
	if label := pgn.OpeningLabel(pgnText); label != "" {
		return label
	}

	pgnOpt, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return ""
	}
	game := chess.NewGame(pgnOpt)
	found := s.book.Find(game.Moves())
	if found == nil {
		return ""
	}
	if found.Code() != "" {
		return found.Code() + ": " + found.Title()
	}
	return found.Title()
}

// cutoffFor maps a time filter name to its earliest allowed game time.
// Unknown filters and "all" mean no cutoff.
func cutoffFor(filter string, now time.Time) (time.Time, bool) {
	var days int
	switch filter {
	case "7days":
		days = 7
	case "30days":
		days = 30
	case "90days":
		days = 90
	case "1year":
		days = 365
	case "2years":
		days = 730
	case "3years":
		days = 1095
	default:
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// filterArchivesByDate keeps archives from the cutoff's month onwards.
// Archive URLs look like: https://api.chess.com/pub/player/{username}/games/YYYY/MM
func filterArchivesByDate(archives []string, cutoff time.Time) []string {
	cutoffMonth := time.Date(cutoff.Year(), cutoff.Month(), 1, 0, 0, 0, 0, time.UTC)

	var filtered []string
	for _, url := range archives {
		parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
		if len(parts) < 2 {
			continue
		}
		year, err1 := strconv.Atoi(parts[len(parts)-2])
		month, err2 := strconv.Atoi(parts[len(parts)-1])
		if err1 != nil || err2 != nil {
			// Keep archives whose date we cannot parse.
			filtered = append(filtered, url)
			continue
		}
		archiveMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		if archiveMonth.Before(cutoffMonth) {
			continue
		}
		filtered = append(filtered, url)
	}
	return filtered
}
