package server

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/helmsman/internal/modules/sequences"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRecommendations returns the buy recommendations from the most
// recent decision cycle.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	result := s.engine.LastResult()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no decision cycle has completed yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":          result.RunID,
		"completed_at":    result.CompletedAt,
		"recommendations": result.Recommendations,
	})
}

// handleScores returns the scored universe from the most recent cycle.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	result := s.engine.LastResult()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no decision cycle has completed yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":       result.RunID,
		"completed_at": result.CompletedAt,
		"scores":       result.Scores,
	})
}

// handleRunCycle triggers a decision cycle synchronously.
func (s *Server) handleRunCycle(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.RunCycle(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("on-demand cycle failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// generateRequest is the body of POST /api/sequences/generate.
type generateRequest struct {
	Opportunities sequences.OpportunitiesByCategory `json:"opportunities"`
	MaxDepth      int                               `json:"max_depth,omitempty"`
	Weighted      *bool                             `json:"weighted,omitempty"`
	AvailableCash float64                           `json:"available_cash_eur"`
	BatchSize     int                               `json:"batch_size,omitempty"`
}

// handleGenerateSequences streams generated sequence batches as NDJSON,
// one Batch object per line, so clients can start consuming before
// generation finishes.
func (s *Server) handleGenerateSequences(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg := s.seqDefaults
	cfg.AvailableCashEUR = req.AvailableCash
	if req.MaxDepth > 0 {
		cfg.MaxDepth = req.MaxDepth
	}
	if req.Weighted != nil {
		cfg.Weighted = *req.Weighted
	}
	if req.BatchSize > 0 {
		cfg.BatchSize = req.BatchSize
	}

	stream := s.sequences.Stream(req.Opportunities, cfg)
	defer stream.Close()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	encoder := json.NewEncoder(w)

	for {
		batch, ok := stream.Next()
		if !ok {
			break
		}
		if r.Context().Err() != nil {
			return
		}
		if err := encoder.Encode(batch); err != nil {
			s.log.Debug().Err(err).Msg("client disconnected during sequence stream")
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
