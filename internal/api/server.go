package api

import (
	"github.com/vytor/chessprofile/internal/services"
)

// Server holds the service layer the HTTP handlers talk to.
type Server struct {
	AnalyzeService   services.AnalyzeService
	PlaystyleService services.PlaystyleService
	ReportService    services.ReportService
}

func NewServer(analyze services.AnalyzeService, playstyle services.PlaystyleService, reports services.ReportService) *Server {
	return &Server{
		AnalyzeService:   analyze,
		PlaystyleService: playstyle,
		ReportService:    reports,
	}
}
