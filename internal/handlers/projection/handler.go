package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// Projector is the calculation surface the handlers depend on
type Projector interface {
	Calculate(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error)
	Compare(ctx context.Context, cfg domain.Configuration) (*domain.ScenarioComparison, error)
	Sensitivity(ctx context.Context, req service.SensitivityRequest) (*domain.SensitivityGrid, error)
	Schedule(ctx context.Context, inputs domain.PropertyInputs) ([]domain.TrancheSchedule, error)
	MarginalTaxRate(profile domain.TaxProfile) (decimal.Decimal, error)
}

type Handler struct {
	projector Projector
}

func NewHandler(projector Projector) *Handler {
	return &Handler{projector: projector}
}

// calculateRequest accepts either one named scenario or a full configuration
type calculateRequest struct {
	Name      string                 `json:"name"`
	Inputs    *domain.PropertyInputs `json:"inputs"`
	Scenarios []domain.Scenario      `json:"scenarios"`
}

type scheduleRequest struct {
	Inputs domain.PropertyInputs `json:"inputs"`
}

type taxRateResponse struct {
	MarginalTaxRate decimal.Decimal `json:"marginal_tax_rate"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Calculate runs one scenario, or compares several when the body carries "scenarios"
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req calculateRequest
	if !decode(w, r, &req) {
		return
	}

	switch {
	case len(req.Scenarios) > 0:
		comparison, err := h.projector.Compare(ctx, domain.Configuration{Scenarios: req.Scenarios})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, comparison)
	case req.Inputs != nil:
		summary, err := h.projector.Calculate(ctx, domain.Scenario{Name: req.Name, Inputs: *req.Inputs})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, summary)
	default:
		writeError(w, r, fmt.Errorf("%w: request needs inputs or scenarios", config.ErrInvalidInputs))
	}
}

func (h *Handler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req service.SensitivityRequest
	if !decode(w, r, &req) {
		return
	}

	grid, err := h.projector.Sensitivity(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, grid)
}

func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decode(w, r, &req) {
		return
	}

	schedules, err := h.projector.Schedule(r.Context(), req.Inputs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, schedules)
}

func (h *Handler) TaxRate(w http.ResponseWriter, r *http.Request) {
	var profile domain.TaxProfile
	if !decode(w, r, &profile) {
		return
	}

	rate, err := h.projector.MarginalTaxRate(profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, taxRateResponse{MarginalTaxRate: rate})
}

func (h *Handler) DepreciationPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, domain.DepreciationPresets())
}

func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, domain.Regions())
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, config.ErrInvalidInputs) {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Msg("request failed")
	writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// writeJSON encodes v as the response body. Decimal amounts are emitted as JSON
// strings ("44.31") so clients never lose precision to float64; request bodies
// accept both strings and bare numbers.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
