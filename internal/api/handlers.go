package api

import (
	"encoding/json"
	"net/http"

	"github.com/sinavyolu/lgs-backend/internal/catalog"
	"github.com/sinavyolu/lgs-backend/internal/progression"
)

// PathUnit is one unit on the learning path as the UI renders it.
type PathUnit struct {
	Unit       catalog.Unit              `json:"unit"`
	Accessible bool                      `json:"accessible"`
	Complete   bool                      `json:"complete"`
	Stages     []progression.StageStatus `json:"stages"`
	NextStage  *progression.Tier         `json:"next_stage,omitempty"`
	BestScore  int                       `json:"best_score"`
	Attempts   int                       `json:"attempts"`
}

type pathResponse struct {
	Units []PathUnit `json:"units"`
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := s.service.ProgressMap(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	premium, err := s.profiles.IsPremium(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	unitIDs := s.catalog.UnitIDs()
	open := progression.UnlockMap(unitIDs, records, premium)

	units := s.catalog.Units()
	resp := pathResponse{Units: make([]PathUnit, 0, len(units))}
	for _, unit := range units {
		rec, ok := records[unit.ID]
		if !ok {
			rec = progression.NewRecord(unit.ID)
		}

		entry := PathUnit{
			Unit:       unit,
			Accessible: open[unit.ID],
			Complete:   progression.IsUnitComplete(rec),
			Stages:     progression.UnitStatuses(rec, open[unit.ID]),
			BestScore:  rec.BestScore,
			Attempts:   rec.AttemptsCount,
		}
		if next, more := progression.NextStage(rec); more {
			entry.NextStage = &next
		}
		resp.Units = append(resp.Units, entry)
	}

	writeJSON(w, http.StatusOK, resp)
}

type submitRequest struct {
	UnitID         string `json:"unit_id"`
	Tier           string `json:"tier"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	XPEarned       int    `json:"xp_earned"`
}

type submitResponse struct {
	Record   progression.Record `json:"record"`
	Complete bool               `json:"complete"`
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tier, err := progression.ParseTier(req.Tier)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, ok := s.catalog.Get(req.UnitID); !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown unit"})
		return
	}

	rec, err := s.service.SubmitResult(r.Context(), userID, req.UnitID, tier, req.Score, req.TotalQuestions, req.XPEarned)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Record:   rec,
		Complete: progression.IsUnitComplete(rec),
	})
}

type unitProgressResponse struct {
	Record    progression.Record        `json:"record"`
	Stages    []progression.StageStatus `json:"stages"`
	Complete  bool                      `json:"complete"`
	NextStage *progression.Tier         `json:"next_stage,omitempty"`
}

func (s *Server) handleUnitProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	unitID := r.PathValue("unitID")
	if _, ok := s.catalog.Get(unitID); !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown unit"})
		return
	}

	rec, err := s.service.Progress(r.Context(), userID, unitID)
	if err != nil {
		writeError(w, err)
		return
	}

	// Single-unit view: the cross-unit gate needs the whole sequence, so
	// recompute it here rather than trusting the client.
	records, err := s.service.ProgressMap(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	premium, err := s.profiles.IsPremium(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	open := progression.UnlockMap(s.catalog.UnitIDs(), records, premium)

	resp := unitProgressResponse{
		Record:   rec,
		Stages:   progression.UnitStatuses(rec, open[unitID]),
		Complete: progression.IsUnitComplete(rec),
	}
	if next, more := progression.NextStage(rec); more {
		resp.NextStage = &next
	}

	writeJSON(w, http.StatusOK, resp)
}
