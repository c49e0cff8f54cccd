package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/telemetry"
	"github.com/piwi3910/BoardCut/internal/units"
)

type convertRequest struct {
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

type convertResponse struct {
	Value     float64 `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Result    float64 `json:"result"`
	Formatted string  `json:"feet_and_inches"`
}

type optimizeRequest struct {
	Boards   []model.BoardSpec   `json:"boards"`
	Cuts     []model.CutSpec     `json:"cuts"`
	Settings *model.PlanSettings `json:"settings,omitempty"`
}

type estimateRequest struct {
	Cuts          []model.CutSpec `json:"cuts"`
	BoardLength   float64         `json:"board_length"`
	BoardUnit     string          `json:"board_unit"`
	KerfInches    float64         `json:"kerf_inches"`
	WastePercent  float64         `json:"waste_percent"`
	PricePerBoard float64         `json:"price_per_board"`
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, units.Supported())
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := units.Convert(req.Value, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inches, _ := units.ToInches(req.Value, req.From)

	writeJSON(w, http.StatusOK, convertResponse{
		Value:     req.Value,
		From:      req.From,
		To:        req.To,
		Result:    result,
		Formatted: units.FormatFeetAndInches(inches),
	})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !decode(w, r, &req) {
		return
	}

	settings := s.cfg.PlanSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	model.AssignIDs(req.Boards, req.Cuts)
	if err := model.Validate(req.Boards, req.Cuts, settings); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := engine.New(settings).Optimize(req.Boards, req.Cuts)
	telemetry.RecordPlan(result, err, time.Since(start))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, units.ErrUnsupportedUnit) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	s.logger.Debug().
		Int("assignments", len(result.Assignments)).
		Float64("shortfall_inches", result.AdditionalMaterialNeededInches).
		Float64("waste_inches", result.TotalWasteInches).
		Msg("plan computed")

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !decode(w, r, &req) {
		return
	}
	if err := model.ValidateCuts(req.Cuts); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BoardLength <= 0 {
		writeError(w, http.StatusBadRequest, "board_length must be positive")
		return
	}

	boardInches, err := units.ToInches(req.BoardLength, req.BoardUnit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	est, err := model.CalculatePurchaseEstimate(req.Cuts, boardInches, req.KerfInches, req.WastePercent, req.PricePerBoard)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// decode reads a JSON body into dst, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
