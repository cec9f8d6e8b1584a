package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessprofile/internal/models"
)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, report models.SavedReport) (int64, error) {
	args := m.Called(ctx, report)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) ListByUsername(ctx context.Context, username string, limit int) ([]models.SavedReport, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedReport), args.Error(1)
}
