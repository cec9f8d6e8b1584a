package repository

import (
	"context"

	"github.com/vytor/chessprofile/internal/models"
)

// ReportRepository persists finished analysis reports.
type ReportRepository interface {
	Insert(ctx context.Context, report models.SavedReport) (int64, error)
	ListByUsername(ctx context.Context, username string, limit int) ([]models.SavedReport, error)
}
