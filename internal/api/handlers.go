package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/vytor/chessprofile/internal/errors"
	"github.com/vytor/chessprofile/internal/logger"
)

// analyzeRequest is the POST /analyze body. The username may also arrive as a
// form value or query parameter.
type analyzeRequest struct {
	Username   string `json:"username"`
	TimeFilter string `json:"time_filter"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "chessprofile",
		"endpoints": []string{
			"POST /analyze",
			"GET /playstyle",
			"GET /reports",
			"GET /health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	req, err := parseAnalyzeRequest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if req.Username == "" {
		handleError(w, r, errors.NewValidationError("username", "is required"))
		return
	}

	log.Info("analyzing player %s (filter=%s)", req.Username, req.TimeFilter)
	report, err := s.AnalyzeService.AnalyzePlayer(r.Context(), req.Username, req.TimeFilter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePlaystyle(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		handleError(w, r, errors.NewValidationError("username", "is required"))
		return
	}
	timeFilter := r.URL.Query().Get("time_filter")

	summary, err := s.PlaystyleService.GetPlaystyle(r.Context(), username, timeFilter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		handleError(w, r, errors.NewValidationError("username", "is required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	reports, err := s.ReportService.ListReports(r.Context(), username, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"username": username,
		"reports":  reports,
	})
}

// parseAnalyzeRequest accepts either a JSON body or form/query values so the
// endpoint is easy to hit from both scripts and plain HTML forms.
func parseAnalyzeRequest(r *http.Request) (analyzeRequest, error) {
	var req analyzeRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errors.NewBadRequestError("invalid JSON body")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, errors.NewBadRequestError("invalid form body")
		}
		req.Username = r.FormValue("username")
		req.TimeFilter = r.FormValue("time_filter")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.TimeFilter == "" {
		req.TimeFilter = "all"
	}
	return req, nil
}
