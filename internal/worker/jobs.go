package worker

import (
	"context"
	"encoding/json"

	"github.com/vytor/chessprofile/internal/logger"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/repository"
)

// SaveReportJob persists a finished analysis report in the background so the
// analyze request path never waits on the database.
type SaveReportJob struct {
	Repo       repository.ReportRepository
	Report     models.AnalysisReport
	TimeFilter string
}

func (j *SaveReportJob) Name() string { return "save_report" }

func (j *SaveReportJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("username", j.Report.Username)

	metricsJSON, err := json.Marshal(j.Report.Metrics)
	if err != nil {
		return err
	}

	saved := models.SavedReport{
		Username:         j.Report.Username,
		TimeFilter:       j.TimeFilter,
		PrimaryProfile:   j.Report.PlayerProfile.PrimaryProfile,
		SecondaryProfile: j.Report.PlayerProfile.SecondaryProfile,
		Confidence:       j.Report.PlayerProfile.Confidence,
		GamesAnalyzed:    j.Report.GamesAnalyzed,
		TotalGames:       j.Report.TotalGames,
		MetricsJSON:      string(metricsJSON),
	}

	id, err := j.Repo.Insert(ctx, saved)
	if err != nil {
		log.Error("failed to persist report: %v", err)
		return err
	}
	log.Info("report persisted: id=%d", id)
	return nil
}
