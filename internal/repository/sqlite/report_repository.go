package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessprofile/internal/logger"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, report models.SavedReport) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("inserting report: username=%s, primary=%s", report.Username, report.PrimaryProfile)

	query, args, err := sqlBuilder.Insert("reports").
		Columns("username", "time_filter", "primary_profile", "secondary_profile",
			"confidence", "games_analyzed", "total_games", "metrics_json").
		Values(report.Username, report.TimeFilter, report.PrimaryProfile, report.SecondaryProfile,
			report.Confidence, report.GamesAnalyzed, report.TotalGames, report.MetricsJSON).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert report: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("report inserted: id=%d", id)
	return id, nil
}

func (r *reportRepository) ListByUsername(ctx context.Context, username string, limit int) ([]models.SavedReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("listing reports: username=%s, limit=%d", username, limit)

	if limit <= 0 {
		limit = 20
	}

	query, args, err := sqlBuilder.Select(
		"id", "username", "time_filter", "primary_profile", "secondary_profile",
		"confidence", "games_analyzed", "total_games", "metrics_json", "created_at",
	).From("reports").
		Where(squirrel.Eq{"username": username}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.SavedReport
	for rows.Next() {
		var rep models.SavedReport
		if err := rows.Scan(&rep.ID, &rep.Username, &rep.TimeFilter, &rep.PrimaryProfile,
			&rep.SecondaryProfile, &rep.Confidence, &rep.GamesAnalyzed, &rep.TotalGames,
			&rep.MetricsJSON, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
