package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/takeoff/pkg/application/dto"
	"github.com/vsinha/takeoff/pkg/application/services/estimate"
	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
	"github.com/vsinha/takeoff/pkg/interfaces/httpapi/response"
)

// Estimator computes proposal estimates
type Estimator interface {
	Estimate(ctx context.Context, in estimate.Input) (*dto.EstimateResult, error)
	EstimateAll(ctx context.Context, inputs []estimate.Input) ([]*dto.EstimateResult, error)
}

type EstimateHandler struct {
	log        *logger.Logger
	estimator  Estimator
	masterlist repositories.RebarMasterlistRepository
}

func NewEstimateHandler(log *logger.Logger, estimator Estimator, masterlist repositories.RebarMasterlistRepository) *EstimateHandler {
	return &EstimateHandler{log: log, estimator: estimator, masterlist: masterlist}
}

func (h *EstimateHandler) toInput(req dto.EstimateRequest) (estimate.Input, error) {
	var lookup dto.RebarLookup
	if h.masterlist != nil {
		lookup = h.masterlist.GetSpec
	}
	items, err := req.ToWorkItems(lookup)
	if err != nil {
		return estimate.Input{}, err
	}
	return estimate.Input{
		ProposalID: entities.ProposalID(strings.TrimSpace(req.ProposalID)),
		WorkItems:  items,
		Selections: req.Selections(),
	}, nil
}

// Estimate prices one proposal
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidJSON, err)
		return
	}

	in, err := h.toInput(req)
	if err != nil {
		respondBoundaryError(c, err)
		return
	}

	result, err := h.estimator.Estimate(c.Request.Context(), in)
	if err != nil {
		h.respondEstimateError(c, err)
		return
	}

	for _, w := range result.Warnings {
		h.log.Warn("estimate warning", "run_id", result.RunID, "proposal_id", result.ProposalID, "warning", w)
	}
	response.RespondOK(c, dto.NewEstimateResponse(result))
}

// EstimateBatch prices several proposals concurrently
func (h *EstimateHandler) EstimateBatch(c *gin.Context) {
	var req dto.BatchEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidJSON, err)
		return
	}

	inputs := make([]estimate.Input, 0, len(req.Proposals))
	for _, p := range req.Proposals {
		in, err := h.toInput(p)
		if err != nil {
			respondBoundaryError(c, err)
			return
		}
		inputs = append(inputs, in)
	}

	results, err := h.estimator.EstimateAll(c.Request.Context(), inputs)
	if err != nil {
		h.respondEstimateError(c, err)
		return
	}

	resp := dto.BatchEstimateResponse{Estimates: make([]dto.EstimateResponse, len(results))}
	for i, r := range results {
		resp.Estimates[i] = dto.NewEstimateResponse(r)
	}
	response.RespondOK(c, resp)
}

func (h *EstimateHandler) respondEstimateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, estimate.ErrInvalidHierarchy):
		response.RespondError(c, http.StatusUnprocessableEntity, response.CodeInvalidHierarchy, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.RespondError(c, http.StatusServiceUnavailable, response.CodeInternal, err)
	default:
		h.log.Error("estimate failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, errors.New("estimate failed"))
	}
}
