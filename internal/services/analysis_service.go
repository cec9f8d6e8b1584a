package services

import (
	"context"
	"math"
	"strings"

	"github.com/vytor/chessprofile/internal/analysis"
	"github.com/vytor/chessprofile/internal/engine"
	apperrors "github.com/vytor/chessprofile/internal/errors"
	"github.com/vytor/chessprofile/internal/logger"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/openings"
	"github.com/vytor/chessprofile/internal/profile"
	"github.com/vytor/chessprofile/internal/repository"
	"github.com/vytor/chessprofile/internal/worker"
)

// Response truncation caps. Order within each list is preserved; only the
// tail is dropped.
const (
	maxEvaluations  = 100
	maxMoveLabels   = 20
	maxOpeningStats = 10
)

// AnalyzeService runs the full engine-backed analysis pipeline for a player.
type AnalyzeService interface {
	AnalyzePlayer(ctx context.Context, username, timeFilter string) (*models.AnalysisReport, error)
}

// EngineSession is the slice of an engine session the analyze pipeline uses:
// reset between games, evaluate within them.
type EngineSession interface {
	analysis.Evaluator
	Reset(ctx context.Context) error
}

// EnginePool hands out engine sessions. Tests substitute fakes; production
// wraps engine.Pool via NewEnginePool.
type EnginePool interface {
	Acquire(ctx context.Context) (EngineSession, error)
	Release(EngineSession)
}

type enginePool struct {
	pool *engine.Pool
}

// NewEnginePool adapts an engine.Pool to the EnginePool interface.
func NewEnginePool(pool *engine.Pool) EnginePool {
	return &enginePool{pool: pool}
}

func (p *enginePool) Acquire(ctx context.Context) (EngineSession, error) {
	session, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (p *enginePool) Release(s EngineSession) {
	if session, ok := s.(*engine.Session); ok {
		p.pool.Release(session)
	}
}

type analyzeService struct {
	games      GameService
	enginePool EnginePool
	analyzer   *analysis.Analyzer
	savePool   *worker.Pool
	reports    repository.ReportRepository
	gameLimit  int
}

// NewAnalyzeService creates an AnalyzeService. gameLimit caps how many of the
// most recent games are replayed through the engine. savePool and reports may
// be nil, in which case finished reports are not persisted.
func NewAnalyzeService(games GameService, enginePool EnginePool, analyzer *analysis.Analyzer,
	savePool *worker.Pool, reports repository.ReportRepository, gameLimit int) AnalyzeService {
	if gameLimit <= 0 {
		gameLimit = 10
	}
	return &analyzeService{
		games:      games,
		enginePool: enginePool,
		analyzer:   analyzer,
		savePool:   savePool,
		reports:    reports,
		gameLimit:  gameLimit,
	}
}

// AnalyzePlayer fetches the player's games, replays the most recent ones
// through the engine, and reduces the classified moves into an aggregate
// profile. A player with no reachable games gets an empty report, not an
// error. Games that fail to parse or yield no rated moves are skipped and do
// not count as analyzed.
func (s *analyzeService) AnalyzePlayer(ctx context.Context, username, timeFilter string) (*models.AnalysisReport, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username", "is required")
	}
	log := logger.FromContext(ctx).WithField("username", username)

	records, err := s.games.FetchGames(ctx, username, timeFilter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return emptyReport(username), nil
	}

	// Opening stats cover the whole fetched batch, not just the games the
	// engine replays.
	openingStats := openings.Rollup(records)
	if len(openingStats) > maxOpeningStats {
		openingStats = openingStats[:maxOpeningStats]
	}

	batch := records
	if len(batch) > s.gameLimit {
		batch = batch[:s.gameLimit]
	}

	session, err := s.enginePool.Acquire(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer s.enginePool.Release(session)

	report := &models.AnalysisReport{
		Username:     username,
		Evaluations:  []int{},
		Blunders:     []string{},
		Mistakes:     []string{},
		Inaccuracies: []string{},
		OpeningStats: openingStats,
		TotalGames:   len(records),
	}

	var metricsBatch []models.GameMetrics
	for _, rec := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := session.Reset(ctx); err != nil {
			log.Warn("engine reset failed: %v", err)
		}

		ga, err := s.analyzer.AnalyzeGame(ctx, session, rec)
		if err != nil {
			log.Warn("skipping game %s: %v", rec.URL, err)
			continue
		}
		if len(ga.Moves) == 0 {
			// Nothing rated, nothing to learn from.
			continue
		}

		report.Evaluations = append(report.Evaluations, ga.Evaluations...)
		report.Blunders = append(report.Blunders, ga.Blunders...)
		report.Mistakes = append(report.Mistakes, ga.Mistakes...)
		report.Inaccuracies = append(report.Inaccuracies, ga.Inaccuracies...)
		metricsBatch = append(metricsBatch, ga.Metrics)
	}
	report.GamesAnalyzed = len(metricsBatch)

	report.Metrics = roundAggregate(analysis.AggregateMetrics(metricsBatch))
	if len(metricsBatch) == 0 {
		report.PlayerProfile = profile.Empty(username)
	} else {
		report.PlayerProfile = profile.Classify(report.Metrics)
	}

	truncateReport(report)

	if s.savePool != nil && s.reports != nil {
		s.savePool.Submit(&worker.SaveReportJob{
			Repo:       s.reports,
			Report:     *report,
			TimeFilter: timeFilter,
		})
	}

	log.Info("analysis complete: %d/%d games analyzed, profile=%s",
		report.GamesAnalyzed, report.TotalGames, report.PlayerProfile.PrimaryProfile)
	return report, nil
}

func emptyReport(username string) *models.AnalysisReport {
	return &models.AnalysisReport{
		Username:      username,
		Evaluations:   []int{},
		Blunders:      []string{},
		Mistakes:      []string{},
		Inaccuracies:  []string{},
		OpeningStats:  []models.OpeningStat{},
		PlayerProfile: profile.Empty(username),
	}
}

func truncateReport(r *models.AnalysisReport) {
	if len(r.Evaluations) > maxEvaluations {
		r.Evaluations = r.Evaluations[:maxEvaluations]
	}
	if len(r.Blunders) > maxMoveLabels {
		r.Blunders = r.Blunders[:maxMoveLabels]
	}
	if len(r.Mistakes) > maxMoveLabels {
		r.Mistakes = r.Mistakes[:maxMoveLabels]
	}
	if len(r.Inaccuracies) > maxMoveLabels {
		r.Inaccuracies = r.Inaccuracies[:maxMoveLabels]
	}
}

func roundAggregate(m models.AggregateMetrics) models.AggregateMetrics {
	m.BlunderRate = round3(m.BlunderRate)
	m.PositionalScore = round3(m.PositionalScore)
	m.TacticalScore = round3(m.TacticalScore)
	m.EndgameScore = round3(m.EndgameScore)
	m.DefensiveScore = round3(m.DefensiveScore)
	m.EvaluationVariance = round3(m.EvaluationVariance)
	m.AvgMoveTime = round3(m.AvgMoveTime)
	m.OpeningEval = round3(m.OpeningEval)
	m.MiddlegameEval = round3(m.MiddlegameEval)
	m.EndgameEval = round3(m.EndgameEval)
	m.MoveCount = round3(m.MoveCount)
	return m
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
