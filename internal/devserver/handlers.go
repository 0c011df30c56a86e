package devserver

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/epicabdou/hse-inspector/internal/hazard"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Base64   string `json:"base64"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Base64 == "" || req.Filename == "" {
		writeError(w, http.StatusBadRequest, "base64 and filename are required")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base64 payload")
		return
	}
	if int64(len(data)) > s.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	key := fmt.Sprintf("%s-%s", uuid.New().String(), req.Filename)

	s.mu.Lock()
	s.uploads[key] = data
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"url": fmt.Sprintf("http://%s/uploads/%s", r.Host, key),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}

	analysis := cannedAnalysis(req.ImageURL)
	now := time.Now().UTC()

	count := len(analysis.Hazards)
	score := analysis.OverallAssessment.RiskScore
	grade := analysis.OverallAssessment.SafetyGrade

	ins := &hazard.Inspection{
		ID:               uuid.New().String(),
		CreatedAt:        now,
		UpdatedAt:        now,
		ImageURL:         req.ImageURL,
		HazardCount:      &count,
		RiskScore:        &score,
		SafetyGrade:      &grade,
		AnalysisResults:  analysis,
		ProcessingStatus: hazard.StatusCompleted,
	}

	s.mu.Lock()
	s.inspections[ins.ID] = ins
	s.order = append([]string{ins.ID}, s.order...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"inspection": ins,
		"analysis":   analysis,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	ins, ok := s.inspections[id]
	s.mu.RUnlock()

	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("inspection %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"inspection": ins,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 10)

	s.mu.RLock()
	total := len(s.order)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]*hazard.Inspection, 0, end-start)
	for _, id := range s.order[start:end] {
		items = append(items, s.inspections[id])
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"inspections": items,
		"page":        page,
		"pageSize":    pageSize,
		"totalCount":  total,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
