package stations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/chargewise/chargewise/core/logger"
	coremetrics "github.com/chargewise/chargewise/core/metrics"
	"github.com/chargewise/chargewise/core/model"
	"github.com/chargewise/chargewise/core/scoring"
	"github.com/chargewise/chargewise/internal/eventbus"
)

// findRequest is the payload of POST /api/find-best-station.
type findRequest struct {
	UserLocation *model.Coordinate `json:"userLocation" validate:"required"`
	Stations     []model.Station   `json:"stations" validate:"required,min=1"`
}

// strategyEntry is one strategy's result in the response.
type strategyEntry struct {
	Algorithm string        `json:"algorithm"`
	Winner    model.Station `json:"winner"`
	Score     float64       `json:"score"`
	Reasoning string        `json:"reasoning"`
}

type explanation struct {
	Consensus string                 `json:"consensus"`
	Details   []model.StrategyDetail `json:"details"`
}

type findResponse struct {
	BestStation      model.Station            `json:"bestStation"`
	AlgorithmResults map[string]strategyEntry `json:"algorithmResults"`
	Explanation      explanation              `json:"explanation"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// FinderHandler serves the scoring endpoint. The optional sink and bus
// receive one event per request; either may be nil.
type FinderHandler struct {
	engine   *scoring.Engine
	sink     coremetrics.Sink
	bus      *eventbus.Bus
	log      logger.Logger
	validate *validator.Validate
}

// NewFinderHandler builds the handler around an engine.
func NewFinderHandler(engine *scoring.Engine, sink coremetrics.Sink, bus *eventbus.Bus, log logger.Logger) *FinderHandler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &FinderHandler{
		engine:   engine,
		sink:     sink,
		bus:      bus,
		log:      log,
		validate: validator.New(),
	}
}

func (h *FinderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	requestID := uuid.NewString()
	start := time.Now()

	var req findRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, requestID, start, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, requestID, start, http.StatusBadRequest, "Invalid input data")
		return
	}

	report, err := h.engine.Evaluate(r.Context(), *req.UserLocation, req.Stations)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrInvalidInput):
			h.fail(w, requestID, start, http.StatusBadRequest, "Invalid input data")
		case errors.Is(err, scoring.ErrEmptyCandidateSet):
			h.fail(w, requestID, start, http.StatusInternalServerError, "No valid station data")
		default:
			h.log.Errorf("request %s: %v", requestID, err)
			h.fail(w, requestID, start, http.StatusInternalServerError, "Algorithm failed")
		}
		return
	}

	h.record(requestID, *req.UserLocation, report)

	resp := findResponse{
		BestStation:      report.BestStation,
		AlgorithmResults: make(map[string]strategyEntry, len(report.Results)),
		Explanation: explanation{
			Consensus: report.Consensus.Consensus,
			Details:   report.Consensus.Details,
		},
	}
	for _, res := range report.Results {
		resp.AlgorithmResults[res.Key] = strategyEntry{
			Algorithm: res.Algorithm,
			Winner:    res.Winner,
			Score:     res.Score,
			Reasoning: res.Reasoning,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinderHandler) fail(w http.ResponseWriter, requestID string, start time.Time, status int, msg string) {
	_ = h.sink.RecordRequest(coremetrics.RequestOutcome{
		RequestID: requestID,
		Duration:  time.Since(start),
		Status:    strconv.Itoa(status),
		Time:      time.Now(),
	})
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *FinderHandler) record(requestID string, user model.Coordinate, report *scoring.Report) {
	now := time.Now()
	outcomes := make([]coremetrics.StrategyOutcome, 0, len(report.Results))
	for _, res := range report.Results {
		outcomes = append(outcomes, coremetrics.StrategyOutcome{
			RequestID: requestID,
			Strategy:  res.Key,
			Winner:    res.Winner.Name,
			Score:     res.Score,
			Time:      now,
		})
	}
	if err := h.sink.RecordStrategyOutcomes(outcomes); err != nil {
		h.log.Warnf("record outcomes: %v", err)
	}
	if err := h.sink.RecordRequest(coremetrics.RequestOutcome{
		RequestID: requestID,
		Stations:  report.Candidates,
		Winner:    report.BestStation.Name,
		Agreement: report.Consensus.Agreement,
		Duration:  report.Elapsed,
		Status:    "200",
		Time:      now,
	}); err != nil {
		h.log.Warnf("record request: %v", err)
	}
	if h.bus != nil {
		h.bus.Publish(eventbus.ResultEvent{
			RequestID:    requestID,
			UserLocation: user,
			Stations:     report.Candidates,
			BestStation:  report.BestStation,
			Results:      report.Results,
			Consensus:    report.Consensus,
			Elapsed:      report.Elapsed,
			Time:         now,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
