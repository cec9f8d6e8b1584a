package services

import (
	"context"
	"strings"

	apperrors "github.com/vytor/chessprofile/internal/errors"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/repository"
)

// ReportService reads back previously persisted analysis reports.
type ReportService interface {
	ListReports(ctx context.Context, username string, limit int) ([]models.SavedReport, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) ListReports(ctx context.Context, username string, limit int) ([]models.SavedReport, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username", "is required")
	}
	reports, err := s.repo.ListByUsername(ctx, username, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if reports == nil {
		reports = []models.SavedReport{}
	}
	return reports, nil
}
